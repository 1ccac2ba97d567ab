package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type memDirectories struct {
	ports.DirectoryRepository
	mu   sync.Mutex
	byID map[string]*domain.Directory
}

func newMemDirectories() *memDirectories {
	return &memDirectories{byID: map[string]*domain.Directory{}}
}

func (r *memDirectories) SlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.byID {
		if d.Slug == slug && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDirectories) FindByID(_ context.Context, id string) (*domain.Directory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.byID[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, domain.ErrDirectoryNotFound
}

func (r *memDirectories) Create(_ context.Context, d *domain.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = "dir-" + d.Slug
	c := *d
	r.byID[d.ID] = &c
	return nil
}

func (r *memDirectories) Update(_ context.Context, d *domain.Directory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *d
	r.byID[d.ID] = &c
	return nil
}

func (r *memDirectories) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func office(name string) *domain.Directory {
	return &domain.Directory{Name: name, Email: "office@tawitawi.gov.ph", Phone: "0917 000 0000"}
}

func TestDirectoryService_CreateDerivesSlugAndCategory(t *testing.T) {
	repo := newMemDirectories()
	rec := &recorder{}
	svc := NewDirectoryService(repo, nil, rec, zerolog.Nop())

	d, err := svc.Create(context.Background(), session(domain.RoleProvincialAdmin, ""), office("  Provincial Health Office "))
	require.NoError(t, err)

	assert.Equal(t, "provincial-health-office", d.Slug)
	assert.Equal(t, domain.DirectoryOther, d.Category)
	assert.Equal(t, []string{domain.ActionCreate + ":" + domain.EntityDirectory}, rec.actions())
}

func TestDirectoryService_SlugInUse(t *testing.T) {
	repo := newMemDirectories()
	svc := NewDirectoryService(repo, nil, &recorder{}, zerolog.Nop())
	admin := session(domain.RoleSuperAdmin, "")

	_, err := svc.Create(context.Background(), admin, office("Treasury"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), admin, office("TREASURY"))
	require.True(t, domain.IsValidation(err), "got %v", err)
}

func TestDirectoryService_MunicipalAdminForbidden(t *testing.T) {
	svc := NewDirectoryService(newMemDirectories(), nil, &recorder{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), session(domain.RoleMunicipalAdmin, "m1"), office("Assessor"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(context.Background(), nil, office("Assessor"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDirectoryService_RejectsUnknownCategoryFilter(t *testing.T) {
	svc := NewDirectoryService(newMemDirectories(), nil, &recorder{}, zerolog.Nop())

	_, err := svc.List(context.Background(), ports.DirectoryFilter{Category: "EMBASSY"})
	assert.True(t, domain.IsValidation(err))
}

func TestDirectoryService_PatchAndDeleteCascade(t *testing.T) {
	repo := newMemDirectories()
	people := newMemItems[domain.DirectoryPerson]()
	rec := &recorder{}
	svc := NewDirectoryService(repo, []ports.OwnerCleaner{people}, rec, zerolog.Nop())
	admin := session(domain.RoleProvincialAdmin, "")
	ctx := context.Background()

	d, err := svc.Create(ctx, admin, office("Engineering"))
	require.NoError(t, err)

	active, order := true, 3
	patched, err := svc.Patch(ctx, admin, d.ID, ports.DirectoryPatch{IsActive: &active, Order: &order})
	require.NoError(t, err)
	assert.True(t, patched.IsActive)
	assert.Equal(t, 3, patched.Order)

	require.NoError(t, svc.Delete(ctx, admin, d.ID))
	assert.Equal(t, []string{d.ID}, people.cleared)

	_, err = svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{
		domain.ActionCreate + ":" + domain.EntityDirectory,
		domain.ActionUpdate + ":" + domain.EntityDirectory,
		domain.ActionDelete + ":" + domain.EntityDirectory,
	}, rec.actions())
}
