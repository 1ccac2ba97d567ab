package handler

import (
	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// --- Request types ---

type showFlagsRequest struct {
	YearsInService *bool `json:"yearsInService"`
	Projects       *bool `json:"projects"`
	Awards         *bool `json:"awards"`
	Legislation    *bool `json:"legislation"`
	Programs       *bool `json:"programs"`
	Education      *bool `json:"education"`
}

type profileRequest struct {
	Slug       string `json:"slug"       validate:"required,sluggable"`
	FirstName  string `json:"firstName"  validate:"required"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"   validate:"required"`
	Suffix     string `json:"suffix"`
	Nickname   string `json:"nickname"`

	FullBio    string `json:"fullBio"`
	ShortBio   string `json:"shortBio"`
	BirthDate  string `json:"birthDate"`
	BirthPlace string `json:"birthPlace"`

	ProfileImage string `json:"profileImage"`
	CoverImage   string `json:"coverImage"`

	Email     string `json:"email"     validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`

	CurrentPosition     string `json:"currentPosition"`
	CurrentOrganization string `json:"currentOrganization"`

	PositionCategory string `json:"positionCategory"`
	District         string `json:"district"         validate:"omitempty,oneof=FIRST SECOND"`
	MunicipalitySlug string `json:"municipalitySlug"`
	PositionOrder    int    `json:"positionOrder"`

	Show     showFlagsRequest `json:"show"`
	IsActive *bool            `json:"isActive"`
}

type profilePatchRequest struct {
	IsActive      *bool             `json:"isActive"`
	PositionOrder *int              `json:"positionOrder"`
	Show          *showFlagsRequest `json:"show"`
}

type municipalitySettingsRequest struct {
	ShowTourism     *bool  `json:"showTourism"`
	ShowNews        *bool  `json:"showNews"`
	ShowServices    *bool  `json:"showServices"`
	ShowBarangays   *bool  `json:"showBarangays"`
	HeroTitle       string `json:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

type municipalityRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required,sluggable"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	History     string `json:"history"`
	Etymology   string `json:"etymology"`

	Logo           string `json:"logo"`
	HeroImage      string `json:"heroImage"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`

	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IncomeClass string `json:"incomeClass"`
	District    string `json:"district"`
	LandArea    string `json:"landArea"`
	Population  int    `json:"population" validate:"gte=0"`

	MayorProfileID string `json:"mayorProfileId"`

	Settings municipalitySettingsRequest `json:"settings"`
	IsActive *bool                       `json:"isActive"`
}

type municipalityPatchRequest struct {
	IsActive *bool                        `json:"isActive"`
	Settings *municipalitySettingsRequest `json:"settings"`
}

type directoryRequest struct {
	Name        string `json:"name"     validate:"required"`
	Slug        string `json:"slug"`
	Category    string `json:"category" validate:"omitempty,oneof=PROVINCIAL_OFFICE NATIONAL_AGENCY BARMM_MINISTRY LGU OTHER"`
	Description string `json:"description"`
	Email       string `json:"email"    validate:"required,email"`
	Phone       string `json:"phone"    validate:"required"`
	Address     string `json:"address"`
	Logo        string `json:"logo"`
	HeadName    string `json:"headName"`
	HeadTitle   string `json:"headTitle"`
	OfficeHours string `json:"officeHours"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

type directoryPatchRequest struct {
	IsActive *bool `json:"isActive"`
	Order    *int  `json:"order"`
}

type newsRequest struct {
	Title       string `json:"title"       validate:"required"`
	Slug        string `json:"slug"`
	Content     string `json:"content"     validate:"required"`
	Excerpt     string `json:"excerpt"`
	BannerImage string `json:"bannerImage" validate:"required"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
	Published   bool   `json:"published"`
}

type newsFeaturedRequest struct {
	Featured *bool `json:"featured"`
}

type gazetteRequest struct {
	Type        string `json:"type"        validate:"required,oneof=ORDINANCE RESOLUTION"`
	Number      string `json:"number"      validate:"required"`
	Year        int    `json:"year"        validate:"required,gt=0"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"     validate:"required"`
}

type municipalAdminRequest struct {
	MunicipalityID string `json:"municipalityId"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email" validate:"omitempty,email"`
	Name           string `json:"name"`
}

type municipalAdminPatchRequest struct {
	IsActive *bool `json:"isActive"`
}

// municipalAdminResponse is the public view of a municipal admin account.
type municipalAdminResponse struct {
	ID             string `json:"id"`
	MunicipalityID string `json:"municipalityId"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
}

// --- Request → domain ---

// boolOr returns *b, or def when b is nil.
func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func toShowFlags(r showFlagsRequest) domain.ShowFlags {
	return domain.ShowFlags{
		YearsInService: boolOr(r.YearsInService, false),
		Projects:       boolOr(r.Projects, false),
		Awards:         boolOr(r.Awards, false),
		Legislation:    boolOr(r.Legislation, false),
		Programs:       boolOr(r.Programs, false),
		Education:      boolOr(r.Education, false),
	}
}

func (r profileRequest) toDomain() *domain.Profile {
	return &domain.Profile{
		Slug:                r.Slug,
		FirstName:           r.FirstName,
		MiddleName:          r.MiddleName,
		LastName:            r.LastName,
		Suffix:              r.Suffix,
		Nickname:            r.Nickname,
		FullBio:             r.FullBio,
		ShortBio:            r.ShortBio,
		BirthDate:           r.BirthDate,
		BirthPlace:          r.BirthPlace,
		ProfileImage:        r.ProfileImage,
		CoverImage:          r.CoverImage,
		Email:               r.Email,
		Phone:               r.Phone,
		Facebook:            r.Facebook,
		Twitter:             r.Twitter,
		Instagram:           r.Instagram,
		CurrentPosition:     r.CurrentPosition,
		CurrentOrganization: r.CurrentOrganization,
		PositionCategory:    domain.PositionCategory(r.PositionCategory),
		District:            domain.District(r.District),
		MunicipalitySlug:    r.MunicipalitySlug,
		PositionOrder:       r.PositionOrder,
		Show:                toShowFlags(r.Show),
		IsActive:            boolOr(r.IsActive, true),
	}
}

func toSettings(r municipalitySettingsRequest) domain.MunicipalitySettings {
	return domain.MunicipalitySettings{
		ShowTourism:     boolOr(r.ShowTourism, true),
		ShowNews:        boolOr(r.ShowNews, true),
		ShowServices:    boolOr(r.ShowServices, true),
		ShowBarangays:   boolOr(r.ShowBarangays, true),
		HeroTitle:       r.HeroTitle,
		HeroSubtitle:    r.HeroSubtitle,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

func (r municipalityRequest) toDomain() *domain.Municipality {
	return &domain.Municipality{
		Name:           r.Name,
		Slug:           r.Slug,
		Tagline:        r.Tagline,
		Description:    r.Description,
		History:        r.History,
		Etymology:      r.Etymology,
		Logo:           r.Logo,
		HeroImage:      r.HeroImage,
		PrimaryColor:   r.PrimaryColor,
		SecondaryColor: r.SecondaryColor,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		IncomeClass:    r.IncomeClass,
		District:       r.District,
		LandArea:       r.LandArea,
		Population:     r.Population,
		MayorProfileID: r.MayorProfileID,
		Settings:       toSettings(r.Settings),
		IsActive:       boolOr(r.IsActive, true),
	}
}

func (r directoryRequest) toDomain() *domain.Directory {
	return &domain.Directory{
		Name:        r.Name,
		Slug:        r.Slug,
		Category:    domain.DirectoryCategory(r.Category),
		Description: r.Description,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Logo:        r.Logo,
		HeadName:    r.HeadName,
		HeadTitle:   r.HeadTitle,
		OfficeHours: r.OfficeHours,
		Order:       r.Order,
		IsActive:    boolOr(r.IsActive, true),
	}
}

func (r newsRequest) toDomain() *domain.News {
	return &domain.News{
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		BannerImage: r.BannerImage,
		Category:    r.Category,
		Featured:    r.Featured,
		Published:   r.Published,
	}
}

func (r gazetteRequest) toDomain() *domain.Gazette {
	return &domain.Gazette{
		Type:        domain.GazetteType(r.Type),
		Number:      r.Number,
		Year:        r.Year,
		Description: r.Description,
		FileURL:     r.FileURL,
	}
}

// --- Domain → response ---

func toMunicipalAdminResponse(u *domain.User) municipalAdminResponse {
	return municipalAdminResponse{
		ID:             u.ID,
		MunicipalityID: u.MunicipalityID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		IsActive:       u.IsActive,
	}
}
