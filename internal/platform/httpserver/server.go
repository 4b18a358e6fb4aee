package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	catalogservice "trafficdesk/contexts/ad-operations/catalog-service"
	catalogerrors "trafficdesk/contexts/ad-operations/catalog-service/domain/errors"
	cataloghttp "trafficdesk/contexts/ad-operations/catalog-service/transport/http"
	ticketservice "trafficdesk/contexts/ad-operations/ticket-service"
	ticketerrors "trafficdesk/contexts/ad-operations/ticket-service/domain/errors"
	tickethttp "trafficdesk/contexts/ad-operations/ticket-service/transport/http"
	"trafficdesk/internal/platform/notify"
	"trafficdesk/internal/shared/taxonomy"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "trafficdesk/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	catalog catalogservice.Module
	tickets ticketservice.Module
	hub     *notify.Hub
}

func New(
	catalog catalogservice.Module,
	tickets ticketservice.Module,
	hub *notify.Hub,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		catalog: catalog,
		tickets: tickets,
		hub:     hub,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/markets", s.handleCreateMarket)
	s.mux.HandleFunc("GET /v1/markets", s.handleListMarkets)
	s.mux.HandleFunc("GET /v1/markets/{market_id}", s.handleGetMarket)
	s.mux.HandleFunc("PATCH /v1/markets/{market_id}", s.handleUpdateMarket)
	s.mux.HandleFunc("DELETE /v1/markets/{market_id}", s.handleDeleteMarket)

	s.mux.HandleFunc("POST /v1/brands", s.handleCreateBrand)
	s.mux.HandleFunc("GET /v1/brands", s.handleListBrands)
	s.mux.HandleFunc("GET /v1/brands/{brand_id}", s.handleGetBrand)
	s.mux.HandleFunc("PATCH /v1/brands/{brand_id}", s.handleUpdateBrand)
	s.mux.HandleFunc("DELETE /v1/brands/{brand_id}", s.handleDeleteBrand)

	s.mux.HandleFunc("POST /v1/channels", s.handleCreateChannel)
	s.mux.HandleFunc("GET /v1/channels", s.handleListChannels)
	s.mux.HandleFunc("GET /v1/channels/{channel_id}", s.handleGetChannel)
	s.mux.HandleFunc("PATCH /v1/channels/{channel_id}", s.handleUpdateChannel)
	s.mux.HandleFunc("DELETE /v1/channels/{channel_id}", s.handleDeleteChannel)

	s.mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /v1/campaigns/{campaign_id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("POST /v1/campaigns/{campaign_id}/status", s.handleChangeCampaignStatus)
	s.mux.HandleFunc("DELETE /v1/campaigns/{campaign_id}", s.handleDeleteCampaign)

	s.mux.HandleFunc("POST /v1/tickets", s.handleCreateTicket)
	s.mux.HandleFunc("GET /v1/tickets", s.handleListTickets)
	s.mux.HandleFunc("GET /v1/tickets/{ticket_id}", s.handleGetTicket)
	s.mux.HandleFunc("PATCH /v1/tickets/{ticket_id}", s.handleUpdateTicket)
	s.mux.HandleFunc("DELETE /v1/tickets/{ticket_id}", s.handleDeleteTicket)
	s.mux.HandleFunc("POST /v1/tickets/{ticket_id}/evaluate", s.handleEvaluateTicket)
	s.mux.HandleFunc("POST /v1/tickets/{ticket_id}/deploy", s.handleDeployTicket)

	s.mux.HandleFunc("GET /v1/events", s.handleEventStream)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrMarketNotFound):
		writeCatalogError(w, http.StatusNotFound, "market_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrBrandNotFound):
		writeCatalogError(w, http.StatusNotFound, "brand_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrChannelNotFound):
		writeCatalogError(w, http.StatusNotFound, "channel_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrCampaignNotFound):
		writeCatalogError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrDuplicateMarketCode),
		errors.Is(err, catalogerrors.ErrDuplicateBrandCode),
		errors.Is(err, catalogerrors.ErrDuplicateAPIID),
		errors.Is(err, catalogerrors.ErrDuplicateCampaignName):
		writeCatalogError(w, http.StatusConflict, "duplicate_identity", err.Error())
	case errors.Is(err, catalogerrors.ErrMarketInUse),
		errors.Is(err, catalogerrors.ErrBrandInUse):
		writeCatalogError(w, http.StatusConflict, "entity_in_use", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidStatusChange):
		writeCatalogError(w, http.StatusConflict, "invalid_status_change", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidCatalogInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_catalog_input", err.Error())
	case errors.Is(err, ticketerrors.ErrUnsupportedPlatform):
		writeCatalogError(w, http.StatusBadRequest, "unsupported_platform", err.Error())
	default:
		if isTaxonomyError(err) {
			writeCatalogError(w, http.StatusBadRequest, "invalid_taxonomy_input", err.Error())
			return
		}
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeTicketDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ticketerrors.ErrTicketNotFound):
		writeTicketError(w, http.StatusNotFound, "ticket_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrCampaignNotFound):
		writeTicketError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrChannelNotFound):
		writeTicketError(w, http.StatusNotFound, "channel_not_found", err.Error())
	case errors.Is(err, ticketerrors.ErrTicketNotReady):
		writeTicketError(w, http.StatusConflict, "ticket_not_ready", err.Error())
	case errors.Is(err, ticketerrors.ErrInvalidTransition):
		writeTicketError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, ticketerrors.ErrTicketStatusConflict):
		writeTicketError(w, http.StatusConflict, "status_conflict", err.Error())
	case errors.Is(err, ticketerrors.ErrUnsupportedPlatform):
		writeTicketError(w, http.StatusBadRequest, "unsupported_platform", err.Error())
	case errors.Is(err, ticketerrors.ErrMalformedPayload),
		errors.Is(err, ticketerrors.ErrMissingField),
		errors.Is(err, ticketerrors.ErrInvalidTicketInput):
		writeTicketError(w, http.StatusBadRequest, "invalid_ticket_input", err.Error())
	default:
		writeTicketError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func isTaxonomyError(err error) bool {
	var invalid taxonomy.InvalidInputError
	return errors.As(err, &invalid)
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeTicketError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tickethttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
