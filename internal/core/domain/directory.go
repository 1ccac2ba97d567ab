package domain

import (
	"strings"
	"time"
)

// DirectoryCategory classifies a directory entry.
type DirectoryCategory string

const (
	DirectoryProvincialOffice DirectoryCategory = "PROVINCIAL_OFFICE"
	DirectoryNationalAgency   DirectoryCategory = "NATIONAL_AGENCY"
	DirectoryBARMMMinistry    DirectoryCategory = "BARMM_MINISTRY"
	DirectoryLGU              DirectoryCategory = "LGU"
	DirectoryOther            DirectoryCategory = "OTHER"
)

func (c DirectoryCategory) Valid() bool {
	switch c {
	case DirectoryProvincialOffice, DirectoryNationalAgency, DirectoryBARMMMinistry, DirectoryLGU, DirectoryOther:
		return true
	}
	return false
}

// Directory is a government office listed in the public directory.
type Directory struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	Name        string            `json:"name" bson:"name"`
	Slug        string            `json:"slug" bson:"slug"`
	Category    DirectoryCategory `json:"category" bson:"category"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Email       string            `json:"email" bson:"email"`
	Phone       string            `json:"phone" bson:"phone"`
	Address     string            `json:"address,omitempty" bson:"address,omitempty"`
	Logo        string            `json:"logo,omitempty" bson:"logo,omitempty"`
	HeadName    string            `json:"headName,omitempty" bson:"head_name,omitempty"`
	HeadTitle   string            `json:"headTitle,omitempty" bson:"head_title,omitempty"`
	OfficeHours string            `json:"officeHours,omitempty" bson:"office_hours,omitempty"`
	Order       int               `json:"order" bson:"order"`
	IsActive    bool              `json:"isActive" bson:"is_active"`
	CreatedAt   time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updated_at"`
}

func (d *Directory) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Email) == "" || strings.TrimSpace(d.Phone) == "" {
		return NewValidationError("name", "name, email, and phone are required")
	}
	if !d.Category.Valid() {
		return NewValidationError("category", "unknown directory category %q", d.Category)
	}
	return nil
}
