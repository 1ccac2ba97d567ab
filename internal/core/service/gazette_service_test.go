package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type memGazette struct {
	ports.GazetteRepository
	byID map[string]*domain.Gazette
}

func (r *memGazette) FindByID(_ context.Context, id string) (*domain.Gazette, error) {
	if g, ok := r.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGazetteNotFound
}

func (r *memGazette) Create(_ context.Context, g *domain.Gazette) error {
	g.ID = "gz-" + g.Number
	r.byID[g.ID] = g
	return nil
}

func (r *memGazette) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func TestGazetteService_CreateAndDelete(t *testing.T) {
	repo := &memGazette{byID: map[string]*domain.Gazette{}}
	rec := &recorder{}
	svc := NewGazetteService(repo, rec, zerolog.Nop())
	admin := session(domain.RoleProvincialAdmin, "")
	ctx := context.Background()

	g, err := svc.Create(ctx, admin, &domain.Gazette{
		Type: domain.GazetteOrdinance, Number: " 12 ", Year: 2024, FileURL: "https://files.example/ord-12.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "12", g.Number)
	assert.False(t, g.CreatedAt.IsZero())
	assert.Equal(t, "ORDINANCE No. 12, s. 2024", gazetteLabel(g))

	require.NoError(t, svc.Delete(ctx, admin, g.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, g.ID), domain.ErrNotFound)
	assert.Equal(t, []string{
		domain.ActionCreate + ":" + domain.EntityGazette,
		domain.ActionDelete + ":" + domain.EntityGazette,
	}, rec.actions())
}

func TestGazetteService_Validation(t *testing.T) {
	svc := NewGazetteService(&memGazette{byID: map[string]*domain.Gazette{}}, &recorder{}, zerolog.Nop())
	admin := session(domain.RoleSuperAdmin, "")

	_, err := svc.Create(context.Background(), admin, &domain.Gazette{Type: "EXECUTIVE_ORDER", Number: "1", Year: 2024, FileURL: "f"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(context.Background(), admin, &domain.Gazette{Type: domain.GazetteResolution, Number: "  ", Year: 2024, FileURL: "f"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.List(context.Background(), ports.GazetteFilter{Type: "MEMO"})
	assert.True(t, domain.IsValidation(err))
}

func TestGazetteService_EditorCannotWrite(t *testing.T) {
	svc := NewGazetteService(&memGazette{byID: map[string]*domain.Gazette{}}, &recorder{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), session(domain.RoleEditor, ""), &domain.Gazette{
		Type: domain.GazetteOrdinance, Number: "3", Year: 2023, FileURL: "f",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
