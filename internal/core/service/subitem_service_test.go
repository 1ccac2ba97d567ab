package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

func ownersOf(ids ...string) OwnerCheck {
	known := map[string]bool{}
	for _, id := range ids {
		known[id] = true
	}
	return func(_ context.Context, ownerID string) error {
		if !known[ownerID] {
			return domain.ErrMunicipalityNotFound
		}
		return nil
	}
}

func newBarangays(t *testing.T) (*SubItemService[domain.Barangay], *memItems[domain.Barangay], *recorder) {
	t.Helper()
	repo := newMemItems[domain.Barangay]()
	rec := &recorder{}
	svc := NewSubItemService[domain.Barangay](domain.KindBarangays, repo, ownersOf("m1", "m2"), MunicipalityWriter, rec, zerolog.Nop())
	return svc, repo, rec
}

func TestSubItemService_MunicipalScope(t *testing.T) {
	svc, repo, rec := newBarangays(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, session(domain.RoleMunicipalAdmin, "m1"), "m1", domain.Barangay{Name: "Lamion"})
	require.NoError(t, err)
	assert.Len(t, repo.byOwner["m1"], 1)
	assert.Equal(t, []string{"CREATE:municipality"}, rec.actions())

	_, err = svc.Add(ctx, session(domain.RoleMunicipalAdmin, "m1"), "m2", domain.Barangay{Name: "Tubig Basag"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Add(ctx, session(domain.RoleProvincialAdmin, ""), "m2", domain.Barangay{Name: "Tubig Basag"})
	assert.NoError(t, err)

	_, err = svc.Add(ctx, nil, "m1", domain.Barangay{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSubItemService_OwnerMustExist(t *testing.T) {
	svc, _, _ := newBarangays(t)
	ctx := context.Background()

	_, err := svc.List(ctx, "m9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Add(ctx, session(domain.RoleSuperAdmin, ""), "m9", domain.Barangay{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubItemService_ReplaceValidatesEverythingFirst(t *testing.T) {
	svc, repo, _ := newBarangays(t)
	ctx := context.Background()
	admin := session(domain.RoleSuperAdmin, "")

	repo.byOwner["m1"] = []domain.Barangay{{Name: "Old"}}

	_, err := svc.Replace(ctx, admin, "m1", []domain.Barangay{{Name: "Lamion"}, {Name: " "}})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Old", repo.byOwner["m1"][0].Name, "nothing written on a validation failure")

	items, err := svc.Replace(ctx, admin, "m1", []domain.Barangay{{Name: "Lamion"}, {Name: "Pasiagan"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, repo.byOwner["m1"], 2)

	items, err = svc.Replace(ctx, admin, "m1", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubItemService_ProvinceWriter(t *testing.T) {
	repo := newMemItems[domain.Project]()
	svc := NewSubItemService[domain.Project](domain.KindProjects, repo, ownersOf("p1"), ProvinceWriter, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Add(ctx, session(domain.RoleMunicipalAdmin, "m1"), "p1", domain.Project{Title: "Port"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Add(ctx, session(domain.RoleProvincialAdmin, ""), "p1", domain.Project{})
	assert.True(t, domain.IsValidation(err))

	stored, err := svc.Update(ctx, session(domain.RoleProvincialAdmin, ""), "p1", "i1", domain.Project{Title: "Port"})
	require.NoError(t, err)
	assert.Equal(t, "Port", stored.Title)
}
