package domain

import (
	"strings"
	"time"
)

// GazetteType is the kind of enacted measure.
type GazetteType string

const (
	GazetteOrdinance  GazetteType = "ORDINANCE"
	GazetteResolution GazetteType = "RESOLUTION"
)

// Gazette is a published ordinance or resolution.
type Gazette struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Type        GazetteType `json:"type" bson:"type"`
	Number      string      `json:"number" bson:"number"`
	Year        int         `json:"year" bson:"year"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
	FileURL     string      `json:"fileUrl" bson:"file_url"`
	CreatedAt   time.Time   `json:"createdAt" bson:"created_at"`
}

func (g *Gazette) Validate() error {
	if g.Type != GazetteOrdinance && g.Type != GazetteResolution {
		return NewValidationError("type", "type must be ORDINANCE or RESOLUTION")
	}
	if strings.TrimSpace(g.Number) == "" || g.Year <= 0 || strings.TrimSpace(g.FileURL) == "" {
		return NewValidationError("number", "type, number, year, and file url are required")
	}
	return nil
}
