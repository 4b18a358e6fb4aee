// Package docs holds the generated OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/brands": {
            "get": {
                "produces": ["application/json"],
                "tags": ["brands"],
                "summary": "List brands",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["brands"],
                "summary": "Create a brand",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate internal code"}
                }
            }
        },
        "/v1/brands/{brand_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["brands"],
                "summary": "Get a brand",
                "parameters": [
                    {"type": "string", "name": "brand_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["brands"],
                "summary": "Update a brand",
                "parameters": [
                    {"type": "string", "name": "brand_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["brands"],
                "summary": "Delete a brand",
                "parameters": [
                    {"type": "string", "name": "brand_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Brand still referenced by campaigns"}
                }
            }
        },
        "/v1/campaigns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List campaigns",
                "parameters": [
                    {"type": "string", "name": "brand_id", "in": "query"},
                    {"type": "string", "name": "market_id", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Create a campaign with a generated taxonomy name",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate campaign name"}
                }
            }
        },
        "/v1/campaigns/{campaign_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Get a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Update campaign budget and flight dates",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["campaigns"],
                "summary": "Delete a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/campaigns/{campaign_id}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Change campaign lifecycle status",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Disallowed status change"}
                }
            }
        },
        "/v1/channels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["channels"],
                "summary": "List channels",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["channels"],
                "summary": "Create a channel",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Unsupported platform"}
                }
            }
        },
        "/v1/channels/{channel_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["channels"],
                "summary": "Get a channel",
                "parameters": [
                    {"type": "string", "name": "channel_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["channels"],
                "summary": "Update a channel",
                "parameters": [
                    {"type": "string", "name": "channel_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["channels"],
                "summary": "Delete a channel",
                "parameters": [
                    {"type": "string", "name": "channel_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/events": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Stream domain events as server-sent events",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/v1/markets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "List markets",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "Create a market",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate market code"}
                }
            }
        },
        "/v1/markets/{market_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "Get a market",
                "parameters": [
                    {"type": "string", "name": "market_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["markets"],
                "summary": "Update a market",
                "parameters": [
                    {"type": "string", "name": "market_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["markets"],
                "summary": "Delete a market",
                "parameters": [
                    {"type": "string", "name": "market_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Market still referenced by campaigns"}
                }
            }
        },
        "/v1/tickets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List traffic tickets",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "query"},
                    {"type": "string", "name": "channel_id", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Create a traffic ticket",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Malformed payload config"}
                }
            }
        },
        "/v1/tickets/{ticket_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Get a traffic ticket",
                "parameters": [
                    {"type": "string", "name": "ticket_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Update a ticket and reset it to draft",
                "parameters": [
                    {"type": "string", "name": "ticket_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Ticket already trafficked"}
                }
            },
            "delete": {
                "tags": ["tickets"],
                "summary": "Delete a traffic ticket",
                "parameters": [
                    {"type": "string", "name": "ticket_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/tickets/{ticket_id}/evaluate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Run the QA checklist against a ticket",
                "parameters": [
                    {"type": "string", "name": "ticket_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Ticket not in an evaluable state"}
                }
            }
        },
        "/v1/tickets/{ticket_id}/deploy": {
            "post": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Queue a QA-passed ticket for platform deployment",
                "parameters": [
                    {"type": "string", "name": "ticket_id", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted"},
                    "409": {"description": "Ticket not ready for deployment"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TrafficDesk API",
	Description:      "Ad operations platform for taxonomy-governed campaign trafficking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
