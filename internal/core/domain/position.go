package domain

import (
	"sort"
)

// PositionCategory groups profiles by the office they hold.
type PositionCategory string

const (
	PositionGovernor       PositionCategory = "GOVERNOR"
	PositionViceGovernor   PositionCategory = "VICE_GOVERNOR"
	PositionBoardMember    PositionCategory = "BOARD_MEMBER"
	PositionExOfficio      PositionCategory = "EX_OFFICIO"
	PositionSPSecretary    PositionCategory = "SP_SECRETARY"
	PositionDepartmentHead PositionCategory = "DEPARTMENT_HEAD"
	PositionMayor          PositionCategory = "MAYOR"
	PositionViceMayor      PositionCategory = "VICE_MAYOR"
	PositionCouncilor      PositionCategory = "COUNCILOR"
	PositionOther          PositionCategory = "OTHER"
)

// District splits the provincial board.
type District string

const (
	DistrictFirst  District = "FIRST"
	DistrictSecond District = "SECOND"
)

// PositionCategories lists every category in display order.
var PositionCategories = []PositionCategory{
	PositionGovernor,
	PositionViceGovernor,
	PositionBoardMember,
	PositionExOfficio,
	PositionSPSecretary,
	PositionDepartmentHead,
	PositionMayor,
	PositionViceMayor,
	PositionCouncilor,
	PositionOther,
}

var positionURLSlugs = map[PositionCategory]string{
	PositionGovernor:       "governor",
	PositionViceGovernor:   "vice-governor",
	PositionBoardMember:    "board-member",
	PositionExOfficio:      "ex-officio",
	PositionSPSecretary:    "sp-secretary",
	PositionDepartmentHead: "department-head",
	PositionMayor:          "mayor",
	PositionViceMayor:      "vice-mayor",
	PositionCouncilor:      "councilor",
	PositionOther:          "other",
}

var urlSlugPositions = func() map[string]PositionCategory {
	m := make(map[string]PositionCategory, len(positionURLSlugs))
	for c, s := range positionURLSlugs {
		m[s] = c
	}
	return m
}()

var positionTitles = map[PositionCategory]string{
	PositionGovernor:       "Governor",
	PositionViceGovernor:   "Vice Governor",
	PositionBoardMember:    "Board Member",
	PositionExOfficio:      "Ex-Officio Member",
	PositionSPSecretary:    "SP Secretary",
	PositionDepartmentHead: "Department Head",
	PositionMayor:          "Mayor",
	PositionViceMayor:      "Vice Mayor",
	PositionCouncilor:      "Councilor",
	PositionOther:          "Official",
}

// Valid reports whether c belongs to the fixed enum.
func (c PositionCategory) Valid() bool {
	_, ok := positionURLSlugs[c]
	return ok
}

// URLSlug returns the public URL segment for c. Empty or unknown
// categories map to "other".
func (c PositionCategory) URLSlug() string {
	if s, ok := positionURLSlugs[c]; ok {
		return s
	}
	return positionURLSlugs[PositionOther]
}

// Title is the human-readable office name.
func (c PositionCategory) Title() string {
	if t, ok := positionTitles[c]; ok {
		return t
	}
	return positionTitles[PositionOther]
}

// Singleton reports whether at most one active profile may hold c.
func (c PositionCategory) Singleton() bool {
	switch c {
	case PositionGovernor, PositionViceGovernor, PositionSPSecretary:
		return true
	}
	return false
}

// PositionFromURLSlug is the inverse of URLSlug.
func PositionFromURLSlug(slug string) (PositionCategory, bool) {
	c, ok := urlSlugPositions[slug]
	return c, ok
}

// ProvincialOfficials is the grouped view of the provincial government.
type ProvincialOfficials struct {
	Governor           *Profile   `json:"governor"`
	ViceGovernor       *Profile   `json:"viceGovernor"`
	SPSecretary        *Profile   `json:"spSecretary"`
	BoardMembersFirst  []*Profile `json:"boardMembersFirst"`
	BoardMembersSecond []*Profile `json:"boardMembersSecond"`
	ExOfficioMembers   []*Profile `json:"exOfficioMembers"`
}

// GroupProvincialOfficials partitions the active profiles in one pass.
// When several active profiles hold a singleton office, the one with the
// lowest positionOrder wins; ties fall back to creation time and then id.
func GroupProvincialOfficials(profiles []*Profile) ProvincialOfficials {
	out := ProvincialOfficials{
		BoardMembersFirst:  []*Profile{},
		BoardMembersSecond: []*Profile{},
		ExOfficioMembers:   []*Profile{},
	}

	for _, p := range profiles {
		if p == nil || !p.IsActive {
			continue
		}
		switch p.PositionCategory {
		case PositionGovernor:
			out.Governor = pickSingleton(out.Governor, p)
		case PositionViceGovernor:
			out.ViceGovernor = pickSingleton(out.ViceGovernor, p)
		case PositionSPSecretary:
			out.SPSecretary = pickSingleton(out.SPSecretary, p)
		case PositionBoardMember:
			switch p.District {
			case DistrictFirst:
				out.BoardMembersFirst = append(out.BoardMembersFirst, p)
			case DistrictSecond:
				out.BoardMembersSecond = append(out.BoardMembersSecond, p)
			}
		case PositionExOfficio:
			out.ExOfficioMembers = append(out.ExOfficioMembers, p)
		}
	}

	SortByPositionOrder(out.BoardMembersFirst)
	SortByPositionOrder(out.BoardMembersSecond)
	SortByPositionOrder(out.ExOfficioMembers)
	return out
}

func pickSingleton(current, candidate *Profile) *Profile {
	if current == nil || positionLess(candidate, current) {
		return candidate
	}
	return current
}

func positionLess(a, b *Profile) bool {
	if a.PositionOrder != b.PositionOrder {
		return a.PositionOrder < b.PositionOrder
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// SortByPositionOrder sorts profiles ascending by positionOrder, keeping
// the incoming order for equal values.
func SortByPositionOrder(profiles []*Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].PositionOrder < profiles[j].PositionOrder
	})
}

// UniquePositionHolder reports whether an active profile other than
// excludeID already holds the singleton office category. It is always
// false for non-singleton categories.
func UniquePositionHolder(profiles []*Profile, category PositionCategory, excludeID string) bool {
	if !category.Singleton() {
		return false
	}
	for _, p := range profiles {
		if p == nil || !p.IsActive {
			continue
		}
		if p.PositionCategory == category && p.ID != excludeID {
			return true
		}
	}
	return false
}

// FilterByCategory returns the active profiles holding category sorted by positionOrder.
func FilterByCategory(profiles []*Profile, category PositionCategory) []*Profile {
	out := []*Profile{}
	for _, p := range profiles {
		if p != nil && p.IsActive && p.PositionCategory == category {
			out = append(out, p)
		}
	}
	SortByPositionOrder(out)
	return out
}
