package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/utils"
)

// In-memory doubles for the mongo repositories and collaborators, mirroring
// the filters and sort orders the real implementations apply.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.ChatSession)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *models.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return errors.New("duplicate session id")
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) UpsertForTurn(ctx context.Context, sessionID, userID, title string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		if s.UserID != userID {
			return errors.New("duplicate key: session id owned by another user")
		}
		s.UpdatedAt = now
		return nil
	}
	t := title
	r.sessions[sessionID] = &models.ChatSession{
		ID:        sessionID,
		UserID:    userID,
		Title:     &t,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *fakeSessionRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Insert(ctx context.Context, m *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeMessageRepo) ListBySession(ctx context.Context, userID, sessionID string, limit int64) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range r.messages {
		if m.SessionID == sessionID && m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.SessionToken != nil && *u.SessionToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *fakeUserRepo) SetSessionToken(ctx context.Context, email, token string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			t := token
			u.SessionToken = &t
			u.UpdatedAt = updatedAt
			return nil
		}
	}
	return utils.ErrNotFound
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "age":
			s := v.(string)
			u.Age = &s
		case "zodiac_sign":
			s := v.(string)
			u.ZodiacSign = &s
		case "profession":
			s := v.(string)
			u.Profession = &s
		case "personality_type":
			s := v.(string)
			u.PersonalityType = &s
		case "personality_archetype":
			s := v.(string)
			u.PersonalityArchetype = &s
		case "onboarding_completed":
			u.OnboardingCompleted = v.(bool)
		case "updated_at":
			u.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = "json"
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key, val string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = val
	return true, nil
}

func (c *fakeCache) GetDel(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.entries[key]
	delete(c.entries, key)
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type fakeLLM struct {
	reply    string
	err      error
	readyErr error
	calls    int

	lastSystem  string
	lastSession string
	lastMessage string
}

func (f *fakeLLM) Ready() error { return f.readyErr }

func (f *fakeLLM) Complete(ctx context.Context, system, sessionID, userMessage string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastSession = sessionID
	f.lastMessage = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Close() error { return nil }

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newFakeClock(start time.Time, step time.Duration) *fakeClock {
	return &fakeClock{next: start, step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
