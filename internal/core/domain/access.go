package domain

// Role is the authorization role attached to every user.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleProvincialAdmin Role = "PROVINCIAL_ADMIN"
	RoleMunicipalAdmin  Role = "MUNICIPAL_ADMIN"
	RoleEditor          Role = "EDITOR"
	RoleViewer          Role = "VIEWER"
)

// Scope is the reach a role has over municipality-scoped resources.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeMunicipality
	ScopeProvince
)

// Scope maps a role onto its access scope. Unknown roles get ScopeNone.
func (r Role) Scope() Scope {
	switch r {
	case RoleSuperAdmin, RoleProvincialAdmin:
		return ScopeProvince
	case RoleMunicipalAdmin:
		return ScopeMunicipality
	default:
		return ScopeNone
	}
}

// Valid reports whether r is one of the fixed roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleProvincialAdmin, RoleMunicipalAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// ProvinceRoles may write province-level resources.
var ProvinceRoles = []Role{RoleSuperAdmin, RoleProvincialAdmin}

// MunicipalWriteRoles may reach municipality-scoped writes; the final
// decision is made by CanAccessMunicipality.
var MunicipalWriteRoles = []Role{RoleSuperAdmin, RoleProvincialAdmin, RoleMunicipalAdmin}

// CanAccessMunicipality decides whether s may act on the municipality with the given id.
func CanAccessMunicipality(s *Session, municipalityID string) bool {
	if s == nil {
		return false
	}
	switch s.User.Role.Scope() {
	case ScopeProvince:
		return true
	case ScopeMunicipality:
		return s.User.MunicipalityID != "" && s.User.MunicipalityID == municipalityID
	default:
		return false
	}
}

// AuthorizeMunicipality is the error-returning form of CanAccessMunicipality.
func AuthorizeMunicipality(s *Session, municipalityID string) error {
	if s == nil {
		return ErrUnauthorized
	}
	if !CanAccessMunicipality(s, municipalityID) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeRoles returns ErrForbidden unless the session role is one of allowed.
func AuthorizeRoles(s *Session, allowed ...Role) error {
	if s == nil {
		return ErrUnauthorized
	}
	for _, r := range allowed {
		if s.User.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
