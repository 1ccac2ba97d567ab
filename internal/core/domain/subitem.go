package domain

import (
	"strings"
	"time"
)

// ItemMeta is carried by every sub-collection item.
type ItemMeta struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	OwnerID string `json:"ownerId" bson:"owner_id"`
	Order   int    `json:"order" bson:"order"`
}

// Meta returns the item's identity and position.
func (m ItemMeta) Meta() ItemMeta { return m }

// SubItem is implemented by every sub-collection item type.
type SubItem interface {
	Meta() ItemMeta
	Validate() error
}

// Normalizer is implemented by items that derive fields before being stored.
type Normalizer interface {
	Normalize()
}

// OwnerKind names the parent resource of a sub-collection.
type OwnerKind string

const (
	OwnerProfile      OwnerKind = "profile"
	OwnerMunicipality OwnerKind = "municipality"
	OwnerDirectory    OwnerKind = "directory"
)

// ItemKind describes one nested collection: its storage name, its URL
// segment and the owner it hangs from.
type ItemKind struct {
	Collection string
	Path       string
	Owner      OwnerKind
}

var (
	KindServicePeriods = ItemKind{Collection: "profile_service_periods", Path: "service-periods", Owner: OwnerProfile}
	KindProjects       = ItemKind{Collection: "profile_projects", Path: "projects", Owner: OwnerProfile}
	KindLegislation    = ItemKind{Collection: "profile_legislation", Path: "legislation", Owner: OwnerProfile}
	KindPrograms       = ItemKind{Collection: "profile_programs", Path: "programs", Owner: OwnerProfile}
	KindAchievements   = ItemKind{Collection: "profile_achievements", Path: "achievements", Owner: OwnerProfile}
	KindEducation      = ItemKind{Collection: "profile_education", Path: "education", Owner: OwnerProfile}
	KindProfileGallery = ItemKind{Collection: "profile_gallery", Path: "gallery", Owner: OwnerProfile}
	KindPositions      = ItemKind{Collection: "profile_positions", Path: "positions", Owner: OwnerProfile}

	KindOfficials          = ItemKind{Collection: "municipality_officials", Path: "officials", Owner: OwnerMunicipality}
	KindBarangays          = ItemKind{Collection: "municipality_barangays", Path: "barangays", Owner: OwnerMunicipality}
	KindMunicipalServices  = ItemKind{Collection: "municipality_services", Path: "services", Owner: OwnerMunicipality}
	KindTourism            = ItemKind{Collection: "municipality_tourism", Path: "tourism", Owner: OwnerMunicipality}
	KindMunicipalNews      = ItemKind{Collection: "municipality_news", Path: "news", Owner: OwnerMunicipality}
	KindMunicipalGallery   = ItemKind{Collection: "municipality_gallery", Path: "gallery", Owner: OwnerMunicipality}

	KindDirectoryPeople = ItemKind{Collection: "directory_people", Path: "people", Owner: OwnerDirectory}
)

// ItemKinds lists every nested collection.
var ItemKinds = []ItemKind{
	KindServicePeriods, KindProjects, KindLegislation, KindPrograms,
	KindAchievements, KindEducation, KindProfileGallery, KindPositions,
	KindOfficials, KindBarangays, KindMunicipalServices, KindTourism,
	KindMunicipalNews, KindMunicipalGallery, KindDirectoryPeople,
}

// KindsOf returns the nested collections hanging from owner.
func KindsOf(owner OwnerKind) []ItemKind {
	var out []ItemKind
	for _, k := range ItemKinds {
		if k.Owner == owner {
			out = append(out, k)
		}
	}
	return out
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "%s is required", field)
	}
	return nil
}

// --- Profile sub-collections ---

// ServicePeriod is a tenure interval; a nil YearEnd means ongoing.
type ServicePeriod struct {
	ItemMeta  `bson:",inline"`
	YearStart int    `json:"yearStart" bson:"year_start"`
	YearEnd   *int   `json:"yearEnd,omitempty" bson:"year_end,omitempty"`
	Title     string `json:"title" bson:"title"`
}

func (s ServicePeriod) Validate() error {
	if s.YearStart <= 0 {
		return NewValidationError("yearStart", "yearStart is required")
	}
	if s.YearEnd != nil && *s.YearEnd < s.YearStart {
		return NewValidationError("yearEnd", "yearEnd must not be before yearStart")
	}
	return requireText("title", s.Title)
}

type Project struct {
	ItemMeta    `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
	Year        int    `json:"year,omitempty" bson:"year,omitempty"`
}

func (p Project) Validate() error { return requireText("title", p.Title) }

type Legislation struct {
	ItemMeta    `bson:",inline"`
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	Number      string `json:"number,omitempty" bson:"number,omitempty"`
	Year        int    `json:"year,omitempty" bson:"year,omitempty"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

func (l Legislation) Validate() error { return requireText("title", l.Title) }

type Program struct {
	ItemMeta    `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Year        int    `json:"year,omitempty" bson:"year,omitempty"`
}

func (p Program) Validate() error { return requireText("title", p.Title) }

type Achievement struct {
	ItemMeta    `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Year        int    `json:"year,omitempty" bson:"year,omitempty"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
}

func (a Achievement) Validate() error { return requireText("title", a.Title) }

type Education struct {
	ItemMeta `bson:",inline"`
	Degree   string `json:"degree" bson:"degree"`
	School   string `json:"school" bson:"school"`
	Year     int    `json:"year,omitempty" bson:"year,omitempty"`
	Honors   string `json:"honors,omitempty" bson:"honors,omitempty"`
}

func (e Education) Validate() error {
	if err := requireText("degree", e.Degree); err != nil {
		return err
	}
	return requireText("school", e.School)
}

// GalleryImage is used by both profile and municipality galleries.
type GalleryImage struct {
	ItemMeta `bson:",inline"`
	URL      string `json:"url" bson:"url"`
	Caption  string `json:"caption,omitempty" bson:"caption,omitempty"`
	Section  string `json:"section,omitempty" bson:"section,omitempty"`
}

func (g GalleryImage) Validate() error { return requireText("url", g.URL) }

// CareerPosition is an entry of a profile's career history.
type CareerPosition struct {
	ItemMeta       `bson:",inline"`
	Title          string `json:"title" bson:"title"`
	Organization   string `json:"organization" bson:"organization"`
	Level          string `json:"level,omitempty" bson:"level,omitempty"`
	District       string `json:"district,omitempty" bson:"district,omitempty"`
	MunicipalityID string `json:"municipalityId,omitempty" bson:"municipality_id,omitempty"`
	StartDate      string `json:"startDate,omitempty" bson:"start_date,omitempty"`
	EndDate        string `json:"endDate,omitempty" bson:"end_date,omitempty"`
	IsCurrent      bool   `json:"isCurrent" bson:"is_current"`
}

func (c CareerPosition) Validate() error {
	if err := requireText("title", c.Title); err != nil {
		return err
	}
	switch c.Level {
	case "", "PROVINCIAL", "MUNICIPAL", "BARANGAY", "NATIONAL":
	default:
		return NewValidationError("level", "level must be one of PROVINCIAL, MUNICIPAL, BARANGAY, NATIONAL")
	}
	return requireText("organization", c.Organization)
}

// --- Municipality sub-collections ---

type MunicipalOfficial struct {
	ItemMeta  `bson:",inline"`
	ProfileID string `json:"profileId" bson:"profile_id"`
	Position  string `json:"position" bson:"position"`
	IsCurrent bool   `json:"isCurrent" bson:"is_current"`
}

func (o MunicipalOfficial) Validate() error {
	if err := requireText("profileId", o.ProfileID); err != nil {
		return err
	}
	return requireText("position", o.Position)
}

type Barangay struct {
	ItemMeta         `bson:",inline"`
	Name             string `json:"name" bson:"name"`
	CaptainName      string `json:"captainName,omitempty" bson:"captain_name,omitempty"`
	CaptainProfileID string `json:"captainProfileId,omitempty" bson:"captain_profile_id,omitempty"`
	Population       int    `json:"population,omitempty" bson:"population,omitempty"`
}

func (b Barangay) Validate() error { return requireText("name", b.Name) }

type MunicipalService struct {
	ItemMeta     `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	Requirements string `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Process      string `json:"process,omitempty" bson:"process,omitempty"`
	Fee          string `json:"fee,omitempty" bson:"fee,omitempty"`
	Icon         string `json:"icon,omitempty" bson:"icon,omitempty"`
}

func (s MunicipalService) Validate() error { return requireText("name", s.Name) }

type TourismSpot struct {
	ItemMeta    `bson:",inline"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Images      []string `json:"images,omitempty" bson:"images,omitempty"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
}

func (t TourismSpot) Validate() error { return requireText("name", t.Name) }

// MunicipalNews is a news post owned by one municipality.
type MunicipalNews struct {
	ItemMeta    `bson:",inline"`
	Title       string     `json:"title" bson:"title"`
	Slug        string     `json:"slug" bson:"slug"`
	Content     string     `json:"content" bson:"content"`
	Excerpt     string     `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Image       string     `json:"image,omitempty" bson:"image,omitempty"`
	Published   bool       `json:"published" bson:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
}

func (n MunicipalNews) Validate() error {
	if err := requireText("title", n.Title); err != nil {
		return err
	}
	return requireText("content", n.Content)
}

// Normalize derives the slug, the excerpt and the publication time.
func (n *MunicipalNews) Normalize() {
	if n.Slug == "" {
		n.Slug = Slugify(n.Title, NewsSlugMax)
	} else {
		n.Slug = Slugify(n.Slug, NewsSlugMax)
	}
	if n.Excerpt == "" {
		n.Excerpt = Excerpt(n.Content, ExcerptLength)
	}
	if n.Published && n.PublishedAt == nil {
		now := time.Now().UTC()
		n.PublishedAt = &now
	}
}

// --- Directory sub-collections ---

type DirectoryPerson struct {
	ItemMeta  `bson:",inline"`
	ProfileID string `json:"profileId,omitempty" bson:"profile_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Position  string `json:"position" bson:"position"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Image     string `json:"image,omitempty" bson:"image,omitempty"`
	IsActive  bool   `json:"isActive" bson:"is_active"`
}

func (p DirectoryPerson) Validate() error {
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	return requireText("position", p.Position)
}
