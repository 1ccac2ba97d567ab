package domain

import (
	"strings"
	"time"
)

// Municipality is a local government unit of the province.
type Municipality struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Tagline     string `json:"tagline,omitempty" bson:"tagline,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	History     string `json:"history,omitempty" bson:"history,omitempty"`
	Etymology   string `json:"etymology,omitempty" bson:"etymology,omitempty"`

	Logo           string `json:"logo,omitempty" bson:"logo,omitempty"`
	HeroImage      string `json:"heroImage,omitempty" bson:"hero_image,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty" bson:"primary_color,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty" bson:"secondary_color,omitempty"`

	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`

	IncomeClass string `json:"incomeClass,omitempty" bson:"income_class,omitempty"`
	District    string `json:"district,omitempty" bson:"district,omitempty"`
	LandArea    string `json:"landArea,omitempty" bson:"land_area,omitempty"`
	Population  int    `json:"population,omitempty" bson:"population,omitempty"`

	MayorProfileID string `json:"mayorProfileId,omitempty" bson:"mayor_profile_id,omitempty"`

	Settings MunicipalitySettings `json:"settings" bson:"settings"`

	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// MunicipalitySettings controls the sections shown on a municipal site.
type MunicipalitySettings struct {
	ShowTourism     bool   `json:"showTourism" bson:"show_tourism"`
	ShowNews        bool   `json:"showNews" bson:"show_news"`
	ShowServices    bool   `json:"showServices" bson:"show_services"`
	ShowBarangays   bool   `json:"showBarangays" bson:"show_barangays"`
	HeroTitle       string `json:"heroTitle,omitempty" bson:"hero_title,omitempty"`
	HeroSubtitle    string `json:"heroSubtitle,omitempty" bson:"hero_subtitle,omitempty"`
	MetaTitle       string `json:"metaTitle,omitempty" bson:"meta_title,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty" bson:"meta_description,omitempty"`
}

func (m *Municipality) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Slug) == "" {
		return NewValidationError("name", "name and slug are required")
	}
	return nil
}
