package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/vistaimoveis/brokerage-service/internal/models"
	"github.com/vistaimoveis/brokerage-service/internal/repositories"
)

// In-memory repositories backing the service tests. Optimistic locking is
// irrelevant here, so UpdateWithRetry applies the mutation directly.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) CountAdmins(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) UpdateIfVersion(_ context.Context, u *models.User, _ int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeUserRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	return mutate(u)
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[uuid.UUID]*models.Property{}}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.properties[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePropertyRepo) Search(_ context.Context, f repositories.PropertyFilter) ([]*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Property
	for _, p := range r.properties {
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.OwnerID != nil && p.OwnerID != *f.OwnerID {
			continue
		}
		if f.City != "" && p.City != f.City {
			continue
		}
		if f.Purpose != nil && *f.Purpose != models.PurposeSaleAndRent &&
			p.Purpose != *f.Purpose && p.Purpose != models.PurposeSaleAndRent {
			continue
		}
		if f.Purpose != nil && *f.Purpose == models.PurposeSaleAndRent && p.Purpose != models.PurposeSaleAndRent {
			continue
		}
		if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
			continue
		}
		if f.MinGarageSpots > 0 && p.GarageSpots < f.MinGarageSpots {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePropertyRepo) UpdateIfVersion(_ context.Context, p *models.Property, _ int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.properties[p.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakePropertyRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return pgx.ErrNoRows
	}
	return mutate(p)
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.properties, id)
	return nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[uuid.UUID]*models.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[uuid.UUID]*models.Lead{}}
}

func (r *fakeLeadRepo) Create(_ context.Context, l *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLeadRepo) List(_ context.Context, f repositories.LeadFilter) ([]*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Lead
	for _, l := range r.leads {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.AssignedUserID != nil &&
			(l.AssignedUserID == nil || *l.AssignedUserID != *f.AssignedUserID) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLeadRepo) UpdateIfVersion(_ context.Context, l *models.Lead, _ int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeLeadRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Lead) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return pgx.ErrNoRows
	}
	return mutate(l)
}

func (r *fakeLeadRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.leads, id)
	return nil
}

type fakeVisitRepo struct {
	mu     sync.Mutex
	visits map[uuid.UUID]*models.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: map[uuid.UUID]*models.Visit{}}
}

func (r *fakeVisitRepo) Create(_ context.Context, v *models.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.visits[v.ID] = &cp
	return nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.visits[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeVisitRepo) List(_ context.Context, f repositories.VisitFilter) ([]*models.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Visit
	for _, v := range r.visits {
		if f.Status != nil && v.Status != *f.Status {
			continue
		}
		if f.PropertyID != nil && v.PropertyID != *f.PropertyID {
			continue
		}
		if f.AssignedUserID != nil &&
			(v.AssignedUserID == nil || *v.AssignedUserID != *f.AssignedUserID) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVisitRepo) UpdateIfVersion(_ context.Context, v *models.Visit, _ int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.visits[v.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeVisitRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Visit) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visits[id]
	if !ok {
		return pgx.ErrNoRows
	}
	return mutate(v)
}

func (r *fakeVisitRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visits[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.visits, id)
	return nil
}

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeRefreshRepo) Create(_ context.Context, rt *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rt
	r.tokens[rt.Token] = &cp
	return nil
}

func (r *fakeRefreshRepo) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.tokens[token]; ok {
		cp := *rt
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRefreshRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.tokens[token]; ok {
		rt.Revoked = true
	}
	return nil
}

func (r *fakeRefreshRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshRepo) DeleteExpired(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, rt := range r.tokens {
		if rt.Revoked {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

// fakeNotifier records what would have been sent. With fail set, every
// send reports a delivery failure.
type fakeNotifier struct {
	mu            sync.Mutex
	fail          bool
	emails        []string
	confirmEmails []string
	confirmSMSes  []string
}

func (n *fakeNotifier) SendProvisioningEmail(_, toEmail, _ string, _ bool) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, toEmail)
	return !n.fail
}

func (n *fakeNotifier) SendVisitConfirmationEmail(_, visitorEmail, _, _, _ string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmEmails = append(n.confirmEmails, visitorEmail)
	return !n.fail
}

func (n *fakeNotifier) SendVisitConfirmationSMS(visitorPhone, _, _, _ string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmSMSes = append(n.confirmSMSes, visitorPhone)
	return !n.fail
}
