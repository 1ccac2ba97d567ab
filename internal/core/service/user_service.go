package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// UserService manages municipal admin accounts and the seed super admin.
type UserService struct {
	users          ports.UserRepository
	municipalities ports.MunicipalityRepository
	activity       ports.ActivityRecorder
	bcryptCost     int
	log            zerolog.Logger
}

func NewUserService(users ports.UserRepository, municipalities ports.MunicipalityRepository, activity ports.ActivityRecorder, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{users: users, municipalities: municipalities, activity: activity, bcryptCost: bcryptCost, log: log}
}

func (s *UserService) ListMunicipalAdmins(ctx context.Context, requester *domain.Session) ([]*domain.User, error) {
	if err := domain.AuthorizeRoles(requester, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, domain.RoleMunicipalAdmin)
}

// CreateMunicipalAdmin creates an active MUNICIPAL_ADMIN. A municipality has
// at most one active admin.
func (s *UserService) CreateMunicipalAdmin(ctx context.Context, requester *domain.Session, in ports.CreateMunicipalAdminInput) (*domain.User, error) {
	if err := domain.AuthorizeRoles(requester, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}

	in.MunicipalityID = strings.TrimSpace(in.MunicipalityID)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.MunicipalityID == "" || in.Username == "" || in.Password == "" || in.Email == "" || in.Name == "" {
		return nil, domain.NewValidationError("", "all fields are required")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least %d characters", domain.MinPasswordLength)
	}

	if _, err := s.municipalities.FindByID(ctx, in.MunicipalityID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.NewValidationError("username", "username already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err := s.ensureNoActiveAdmin(ctx, in.MunicipalityID, ""); err != nil {
		return nil, err
	}

	hash, err := domain.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   hash,
		Name:           in.Name,
		Role:           domain.RoleMunicipalAdmin,
		MunicipalityID: in.MunicipalityID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewValidationError("username", "username already exists")
		}
		return nil, err
	}

	s.activity.Record(domain.NewActivity(requester, domain.ActionCreate, domain.EntityUser, user.ID, user.Username))
	s.log.Info().Str("user_id", user.ID).Str("municipality_id", user.MunicipalityID).Msg("municipal admin created")
	return user, nil
}

// SetMunicipalAdminActive toggles an admin. Re-activation is refused while
// another active admin holds the same municipality.
func (s *UserService) SetMunicipalAdminActive(ctx context.Context, requester *domain.Session, id string, active bool) error {
	if err := domain.AuthorizeRoles(requester, domain.RoleSuperAdmin); err != nil {
		return err
	}
	user, err := s.municipalAdmin(ctx, id)
	if err != nil {
		return err
	}
	if active && !user.IsActive {
		if err := s.ensureNoActiveAdmin(ctx, user.MunicipalityID, user.ID); err != nil {
			return err
		}
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.activity.Record(domain.NewActivity(requester, domain.ActionUpdate, domain.EntityUser, user.ID, user.Username))
	return nil
}

func (s *UserService) DeleteMunicipalAdmin(ctx context.Context, requester *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(requester, domain.RoleSuperAdmin); err != nil {
		return err
	}
	user, err := s.municipalAdmin(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(domain.NewActivity(requester, domain.ActionDelete, domain.EntityUser, user.ID, user.Username))
	s.log.Info().Str("user_id", user.ID).Msg("municipal admin deleted")
	return nil
}

// EnsureSeedAdmin creates a SUPER_ADMIN when the user store is empty. It
// reports whether an account was created.
func (s *UserService) EnsureSeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	if len(password) < domain.MinPasswordLength {
		return false, domain.NewValidationError("password", "seed admin password must be at least %d characters", domain.MinPasswordLength)
	}
	if username = strings.TrimSpace(username); username == "" {
		username = "admin"
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := domain.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Name:         "Super Administrator",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	s.log.Info().Str("username", username).Msg("seed super admin created")
	return true, nil
}

func (s *UserService) municipalAdmin(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleMunicipalAdmin {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ensureNoActiveAdmin(ctx context.Context, municipalityID, excludeID string) error {
	admins, err := s.users.ListByRole(ctx, domain.RoleMunicipalAdmin)
	if err != nil {
		return err
	}
	for _, a := range admins {
		if a.IsActive && a.MunicipalityID == municipalityID && a.ID != excludeID {
			return domain.NewValidationError("municipalityId", "this municipality already has an admin")
		}
	}
	return nil
}
