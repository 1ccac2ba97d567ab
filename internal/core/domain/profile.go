package domain

import (
	"strings"
	"time"
)

// Profile is a government official's public record.
type Profile struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Slug string `json:"slug" bson:"slug"`

	FirstName  string `json:"firstName" bson:"first_name"`
	MiddleName string `json:"middleName,omitempty" bson:"middle_name,omitempty"`
	LastName   string `json:"lastName" bson:"last_name"`
	Suffix     string `json:"suffix,omitempty" bson:"suffix,omitempty"`
	Nickname   string `json:"nickname,omitempty" bson:"nickname,omitempty"`

	FullBio    string `json:"fullBio,omitempty" bson:"full_bio,omitempty"`
	ShortBio   string `json:"shortBio,omitempty" bson:"short_bio,omitempty"`
	BirthDate  string `json:"birthDate,omitempty" bson:"birth_date,omitempty"`
	BirthPlace string `json:"birthPlace,omitempty" bson:"birth_place,omitempty"`

	ProfileImage string `json:"profileImage,omitempty" bson:"profile_image,omitempty"`
	CoverImage   string `json:"coverImage,omitempty" bson:"cover_image,omitempty"`

	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`

	CurrentPosition     string `json:"currentPosition,omitempty" bson:"current_position,omitempty"`
	CurrentOrganization string `json:"currentOrganization,omitempty" bson:"current_organization,omitempty"`

	PositionCategory PositionCategory `json:"positionCategory,omitempty" bson:"position_category,omitempty"`
	District         District         `json:"district,omitempty" bson:"district,omitempty"`
	MunicipalitySlug string           `json:"municipalitySlug,omitempty" bson:"municipality_slug,omitempty"`
	PositionOrder    int              `json:"positionOrder" bson:"position_order"`

	Show ShowFlags `json:"show" bson:"show"`

	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// ShowFlags toggles which stat cards are publicly visible.
type ShowFlags struct {
	YearsInService bool `json:"yearsInService" bson:"years_in_service"`
	Projects       bool `json:"projects" bson:"projects"`
	Awards         bool `json:"awards" bson:"awards"`
	Legislation    bool `json:"legislation" bson:"legislation"`
	Programs       bool `json:"programs" bson:"programs"`
	Education      bool `json:"education" bson:"education"`
}

// FullName joins the name parts, skipping empty ones.
func (p *Profile) FullName() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName, p.Suffix} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// PositionTitle prefers the free-text current position over the category title.
func (p *Profile) PositionTitle() string {
	if p.CurrentPosition != "" {
		return p.CurrentPosition
	}
	return p.PositionCategory.Title()
}

// Validate checks the fields required on every profile write.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" || strings.TrimSpace(p.Slug) == "" {
		return NewValidationError("firstName", "first name, last name, and slug are required")
	}
	if p.PositionCategory != "" && !p.PositionCategory.Valid() {
		return NewValidationError("positionCategory", "unknown position category %q", p.PositionCategory)
	}
	if p.District != "" && p.District != DistrictFirst && p.District != DistrictSecond {
		return NewValidationError("district", "district must be FIRST or SECOND")
	}
	return nil
}

// StatCard is one entry of the public profile summary.
type StatCard struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Enabled bool   `json:"enabled"`
	HasData bool   `json:"hasData"`
}

// ProfileCounts are the sizes of the sub-collections feeding the stat cards.
type ProfileCounts struct {
	ServicePeriods int
	Projects       int
	Awards         int
	Legislation    int
	Programs       int
	Education      int
}

// BuildStatCards assembles the six stat cards. When publicOnly is set,
// disabled cards and cards without data are left out.
func BuildStatCards(show ShowFlags, counts ProfileCounts, yearsInService int, publicOnly bool) []StatCard {
	all := []StatCard{
		{Key: "yearsInService", Label: "Years in Service", Value: yearsInService, Enabled: show.YearsInService, HasData: counts.ServicePeriods > 0},
		{Key: "projects", Label: "Projects", Value: counts.Projects, Enabled: show.Projects, HasData: counts.Projects > 0},
		{Key: "awards", Label: "Awards", Value: counts.Awards, Enabled: show.Awards, HasData: counts.Awards > 0},
		{Key: "legislation", Label: "Legislation", Value: counts.Legislation, Enabled: show.Legislation, HasData: counts.Legislation > 0},
		{Key: "programs", Label: "Programs", Value: counts.Programs, Enabled: show.Programs, HasData: counts.Programs > 0},
		{Key: "education", Label: "Education", Value: counts.Education, Enabled: show.Education, HasData: counts.Education > 0},
	}
	if !publicOnly {
		return all
	}
	visible := make([]StatCard, 0, len(all))
	for _, c := range all {
		if c.Enabled && c.HasData {
			visible = append(visible, c)
		}
	}
	return visible
}
