package entities

import "time"

// Brand is an advertiser identity. InternalCode is the short unique code
// that leads taxonomy-generated campaign names.
type Brand struct {
	BrandID      string
	Name         string
	InternalCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
