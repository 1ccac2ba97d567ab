package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// In-memory collaborators shared by the service tests.

type recorder struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *recorder) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, a)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action+":"+e.EntityType)
	}
	return out
}

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
}

func newMemUsers(users ...*domain.User) *memUsers {
	r := &memUsers{byID: map[string]*domain.User{}}
	for _, u := range users {
		_ = r.Create(context.Background(), u)
	}
	return r
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username {
			return domain.ErrDuplicateKey
		}
	}
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	c := *user
	r.byID[user.ID] = &c
	return nil
}

func (r *memUsers) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.LastLogin = &at
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *memUsers) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.IsActive = active
		return nil
	}
	return domain.ErrUserNotFound
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memUsers) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memUsers) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == role {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

type memMunicipalities struct {
	ports.MunicipalityRepository
	byID map[string]*domain.Municipality
}

func newMemMunicipalities(ms ...*domain.Municipality) *memMunicipalities {
	r := &memMunicipalities{byID: map[string]*domain.Municipality{}}
	for _, m := range ms {
		r.byID[m.ID] = m
	}
	return r
}

func (r *memMunicipalities) FindByID(_ context.Context, id string) (*domain.Municipality, error) {
	if m, ok := r.byID[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, domain.ErrMunicipalityNotFound
}

// memTokens serializes Consume behind a mutex, which is the guarantee the
// document store gives through a conditional update.
type memTokens struct {
	mu     sync.Mutex
	byHash map[string]*domain.DelegatedToken
}

func newMemTokens() *memTokens {
	return &memTokens{byHash: map[string]*domain.DelegatedToken{}}
}

func (r *memTokens) Create(_ context.Context, t *domain.DelegatedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.byHash[t.TokenHash] = &c
	return nil
}

func (r *memTokens) Consume(_ context.Context, tokenHash string, now time.Time) (*domain.DelegatedToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byHash[tokenHash]
	if !ok || !t.Usable(now) {
		return nil, domain.ErrInvalidToken
	}
	t.Used = true
	t.UsedAt = &now
	c := *t
	return &c, nil
}

type memProfiles struct {
	mu     sync.Mutex
	byID   map[string]*domain.Profile
	nextID int
}

func newMemProfiles(ps ...*domain.Profile) *memProfiles {
	r := &memProfiles{byID: map[string]*domain.Profile{}}
	for _, p := range ps {
		r.byID[p.ID] = p
	}
	return r
}

func (r *memProfiles) SlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProfiles) List(_ context.Context, activeOnly bool) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Profile{}
	for _, p := range r.byID {
		if activeOnly && !p.IsActive {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *memProfiles) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *memProfiles) FindBySlug(_ context.Context, slug string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Slug == slug {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *memProfiles) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = fmt.Sprintf("profile-%d", r.nextID)
	c := *p
	r.byID[p.ID] = &c
	return nil
}

func (r *memProfiles) Update(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	c := *p
	r.byID[p.ID] = &c
	return nil
}

func (r *memProfiles) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// memItems keeps one nested collection per owner.
type memItems[T domain.SubItem] struct {
	byOwner map[string][]T
	cleared []string
}

func newMemItems[T domain.SubItem]() *memItems[T] {
	return &memItems[T]{byOwner: map[string][]T{}}
}

func (r *memItems[T]) List(_ context.Context, ownerID string) ([]T, error) {
	return append([]T{}, r.byOwner[ownerID]...), nil
}

func (r *memItems[T]) Count(_ context.Context, ownerID string) (int, error) {
	return len(r.byOwner[ownerID]), nil
}

func (r *memItems[T]) Add(_ context.Context, ownerID string, item T) (T, error) {
	r.byOwner[ownerID] = append(r.byOwner[ownerID], item)
	return item, nil
}

func (r *memItems[T]) Update(_ context.Context, _, _ string, item T) (T, error) {
	return item, nil
}

func (r *memItems[T]) Delete(context.Context, string, string) error { return nil }

func (r *memItems[T]) Replace(_ context.Context, ownerID string, items []T) ([]T, error) {
	r.byOwner[ownerID] = append([]T{}, items...)
	return items, nil
}

func (r *memItems[T]) DeleteByOwner(_ context.Context, ownerID string) error {
	delete(r.byOwner, ownerID)
	r.cleared = append(r.cleared, ownerID)
	return nil
}

func session(role domain.Role, municipalityID string) *domain.Session {
	return &domain.Session{User: domain.SessionUser{ID: "actor", Name: "Actor", Role: role, MunicipalityID: municipalityID}}
}
