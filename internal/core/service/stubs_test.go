package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// stubProfileRepo is an in-memory ProfileRepository. Values are cloned on
// the way in and out so tests cannot alias stored state.
type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile

	findErr   error
	saveErr   error
	updateErr error
	listErr   error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	if p.LastDonationDate != nil {
		t := *p.LastDonationDate
		cp.LastDonationDate = &t
	}
	if p.NextAvailableDate != nil {
		t := *p.NextAvailableDate
		cp.NextAvailableDate = &t
	}
	return &cp
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProfileRepo) ListByBloodGroup(_ context.Context, bg domain.BloodGroup) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Profile, 0)
	for _, p := range r.profiles {
		if p.BloodGroup == bg {
			out = append(out, cloneProfile(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProfileRepo) Save(_ context.Context, id string, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.profiles[id] = cloneProfile(p)
	return nil
}

func (r *stubProfileRepo) Update(_ context.Context, id string, u ports.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.ContactNumber != nil {
		p.ContactNumber = *u.ContactNumber
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.BloodGroup != nil {
		p.BloodGroup = *u.BloodGroup
	}
	if u.LastDonationDate != nil {
		t := *u.LastDonationDate
		p.LastDonationDate = &t
	}
	if u.NextAvailableDate != nil {
		t := *u.NextAvailableDate
		p.NextAvailableDate = &t
	}
	return nil
}

// stubPostRepo is an in-memory PostRepository with sequential ids and
// newest-first list ordering.
type stubPostRepo struct {
	mu     sync.Mutex
	posts  map[string]*domain.Post
	nextID int

	createErr error
	findErr   error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	cp := *p
	return &cp
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("post-%d", r.nextID)
	cp := clonePost(p)
	cp.ID = id
	r.posts[id] = cp
	return id, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) list(filter func(*domain.Post) bool) []*domain.Post {
	out := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if filter(p) {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(*domain.Post) bool { return true }), nil
}

func (r *stubPostRepo) ListOpen(_ context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(p *domain.Post) bool { return p.Status == domain.PostOpen }), nil
}

func (r *stubPostRepo) ListByRequester(_ context.Context, requesterID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(p *domain.Post) bool { return p.RequesterID == requesterID }), nil
}

func (r *stubPostRepo) UpdateStatus(_ context.Context, id string, status domain.PostStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Status = status
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// stubProvider fakes the identity provider with a fixed account table.
type stubProvider struct {
	accounts map[string]stubAccount // keyed by email

	createErr error
	verifyErr error
	resetErr  error
	resetLink string
}

type stubAccount struct {
	id       string
	password string
}

func newStubProvider() *stubProvider {
	return &stubProvider{accounts: make(map[string]stubAccount), resetLink: "https://id.example/reset?oob=abc"}
}

func (p *stubProvider) CreateAccount(_ context.Context, email, password, displayName string) (*ports.AccountHandle, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if _, exists := p.accounts[email]; exists {
		return nil, domain.ErrDuplicateAccount
	}
	id := fmt.Sprintf("uid-%d", len(p.accounts)+1)
	p.accounts[email] = stubAccount{id: id, password: password}
	return &ports.AccountHandle{ID: id, Email: email, DisplayName: displayName}, nil
}

func (p *stubProvider) VerifyPassword(_ context.Context, email, password string) (*ports.Verification, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	acc, ok := p.accounts[email]
	if !ok || acc.password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.Verification{
		UserID:       acc.id,
		Email:        email,
		IDToken:      "idtoken-" + acc.id,
		RefreshToken: "refresh-" + acc.id,
	}, nil
}

func (p *stubProvider) PasswordResetLink(_ context.Context, email string) (string, error) {
	if p.resetErr != nil {
		return "", p.resetErr
	}
	return p.resetLink, nil
}

// stubThrottle records Allow/Mark calls.
type stubThrottle struct {
	allowed  bool
	allowErr error
	markErr  error
	marked   []string
}

func (t *stubThrottle) Allow(_ context.Context, email string) (bool, error) {
	return t.allowed, t.allowErr
}

func (t *stubThrottle) Mark(_ context.Context, email string) error {
	t.marked = append(t.marked, email)
	return t.markErr
}

// stubMailer records sends.
type stubMailer struct {
	resets   []string
	alerts   []ports.DonorAlert
	sendErr  error
	alertErr error
}

func (m *stubMailer) SendPasswordReset(_ context.Context, toEmail, resetLink string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.resets = append(m.resets, toEmail)
	return nil
}

func (m *stubMailer) SendDonorAlert(_ context.Context, alert ports.DonorAlert) error {
	if m.alertErr != nil {
		return m.alertErr
	}
	m.alerts = append(m.alerts, alert)
	return nil
}

// stubDispatcher captures enqueued alerts synchronously.
type stubDispatcher struct {
	alerts []ports.DonorAlert
}

func (d *stubDispatcher) Enqueue(alert ports.DonorAlert) {
	d.alerts = append(d.alerts, alert)
}

func datePtr(t time.Time) *time.Time { return &t }
