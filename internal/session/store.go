package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/wastepay/pspctl/internal/api"
)

// State is the session lifecycle state.
type State int

const (
	// StateUninitialized is the state before Hydrate has been called.
	StateUninitialized State = iota
	// StateHydrating is the transient state while storage is being read.
	StateHydrating
	// StateUnauthenticated means no usable session is present.
	StateUnauthenticated
	// StateAuthenticated means user and access token are present.
	StateAuthenticated
	// StateAuthenticatedTempPassword means the account is logged in but must
	// change its temporary password before anything else.
	StateAuthenticatedTempPassword
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedTempPassword:
		return "authenticated-temp-password"
	default:
		return "unknown"
	}
}

// DashboardCache is the persisted dashboard summary snapshot.
type DashboardCache struct {
	PSPInfo     json.RawMessage `json:"pspInfo"`
	LastFetched time.Time       `json:"lastFetched"`
}

// SummaryFetcher fetches the dashboard summary blob using the current
// session. Wired to the API client after both are constructed.
type SummaryFetcher func(ctx context.Context) (json.RawMessage, error)

// Snapshot is an immutable view of session state for guards and commands.
type Snapshot struct {
	Hydrated     bool
	State        State
	User         *api.User
	Organization *api.Organization
	Role         string
}

// Store is the single source of truth for the authenticated session. It is
// an explicit, injectable object: construct one per process (or per test)
// and pass it to whatever needs it.
type Store struct {
	mu           sync.RWMutex
	storage      Storage
	logger       *slog.Logger
	fetchSummary SummaryFetcher

	phase        State // Uninitialized or Hydrating, until hydration completes
	hydrated     bool
	user         *api.User
	org          *api.Organization
	access       string
	refresh      string
	tempPassword bool
	summary      *DashboardCache
}

// NewStore creates a session store over the given storage.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		logger:  logger,
		phase:   StateUninitialized,
	}
}

// SetSummaryFetcher wires the dashboard summary fetch. Called once during
// startup wiring, after the API client exists.
func (s *Store) SetSummaryFetcher(fn SummaryFetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSummary = fn
}

// Hydrate restores the session from durable storage. Runs once at startup,
// before any guard decision. Storage read or parse failures degrade to a
// logged-out session; Hydrate never fails.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.phase = StateHydrating

	user := readJSON[api.User](s, KeyUser)
	org := readJSON[api.Organization](s, KeyOrganization)
	access := s.readString(KeyAccessToken)
	refresh := s.readString(KeyRefreshToken)

	// Partial presence is no session: a token without a user (or the other
	// way round) cannot be trusted.
	if user == nil || access == "" {
		s.hydrated = true
		return
	}

	s.user = user
	s.org = org
	s.access = access
	s.refresh = refresh

	if raw := s.readString(KeyTempPassword); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.logger.Debug("ignoring malformed temp-password flag", "value", raw)
		}
		s.tempPassword = v && err == nil
	}

	s.summary = readJSON[DashboardCache](s, KeyDashboardData)
	s.hydrated = true
}

// readJSON decodes a stored JSON value; malformed content reads as absent.
func readJSON[T any](s *Store, key string) *T {
	data, ok, err := s.storage.Get(key)
	if err != nil || !ok {
		if err != nil {
			s.logger.Debug("session storage read failed", "key", key, "error", err)
		}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Debug("discarding malformed session value", "key", key, "error", err)
		return nil
	}
	return &v
}

func (s *Store) readString(key string) string {
	data, ok, err := s.storage.Get(key)
	if err != nil || !ok {
		return ""
	}
	return string(data)
}

// Login commits a fresh session to memory and storage. When the temporary
// password flag is clear, the dashboard summary is fetched best-effort with
// the new token; a summary failure never rolls back the login.
func (s *Store) Login(ctx context.Context, user *api.User, org *api.Organization, access, refresh string, tempPassword bool) error {
	s.mu.Lock()
	s.user = user
	s.org = org
	s.access = access
	s.refresh = refresh
	s.tempPassword = tempPassword
	s.hydrated = true

	err := errors.Join(
		s.writeJSON(KeyUser, user),
		s.writeJSON(KeyOrganization, org),
		s.storage.Set(KeyAccessToken, []byte(access)),
		s.writeOrClearToken(KeyRefreshToken, refresh),
		s.storage.Set(KeyTempPassword, []byte(strconv.FormatBool(tempPassword))),
	)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if !tempPassword {
		if serr := s.RefreshDashboardSummary(ctx); serr != nil {
			s.logger.Debug("dashboard summary fetch after login failed", "error", serr)
		}
	}
	return nil
}

// Logout clears the session from memory and storage. Idempotent.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.org = nil
	s.access = ""
	s.refresh = ""
	s.tempPassword = false
	s.summary = nil
	s.hydrated = true

	var errs []error
	for _, key := range AllKeys {
		errs = append(errs, s.storage.Delete(key))
	}
	return errors.Join(errs...)
}

// UpdateTokens rotates the credential pair in place. Both tokens change
// together under one lock; user, organization, and summary are untouched.
func (s *Store) UpdateTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = access
	s.refresh = refresh

	return errors.Join(
		s.storage.Set(KeyAccessToken, []byte(access)),
		s.writeOrClearToken(KeyRefreshToken, refresh),
	)
}

// RefreshDashboardSummary re-fetches the cached summary. No-op when there is
// no access token or no fetcher wired.
func (s *Store) RefreshDashboardSummary(ctx context.Context) error {
	s.mu.RLock()
	fetch := s.fetchSummary
	hasToken := s.access != ""
	s.mu.RUnlock()

	if !hasToken || fetch == nil {
		return nil
	}

	payload, err := fetch(ctx)
	if err != nil {
		return err
	}

	cache := &DashboardCache{PSPInfo: payload, LastFetched: time.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = cache
	return s.writeJSON(KeyDashboardData, cache)
}

func (s *Store) writeJSON(key string, v any) error {
	if v == nil {
		return s.storage.Delete(key)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.storage.Set(key, data)
}

func (s *Store) writeOrClearToken(key, token string) error {
	if token == "" {
		return s.storage.Delete(key)
	}
	return s.storage.Set(key, []byte(token))
}

// AccessToken implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken implements api.TokenSource.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// Hydrated reports whether startup hydration has completed.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// IsAuthenticated holds iff user and access token are both present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.access != ""
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	if !s.hydrated {
		return s.phase
	}
	if s.user == nil || s.access == "" {
		return StateUnauthenticated
	}
	if s.tempPassword {
		return StateAuthenticatedTempPassword
	}
	return StateAuthenticated
}

// User returns the logged-in user, nil when unauthenticated.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Organization returns the PSP profile, nil when unauthenticated.
func (s *Store) Organization() *api.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.org
}

// DashboardSummary returns the cached summary, nil when absent.
func (s *Store) DashboardSummary() *DashboardCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Snapshot captures the state guards evaluate against.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Hydrated:     s.hydrated,
		State:        s.stateLocked(),
		User:         s.user,
		Organization: s.org,
	}
	if s.user != nil {
		snap.Role = s.user.Role
	}
	return snap
}
