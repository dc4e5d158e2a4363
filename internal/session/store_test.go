package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastepay/pspctl/internal/api"
)

func testUser() *api.User {
	return &api.User{ID: "u-1", Email: "ops@wastepay.example", Role: "admin", Active: true}
}

func testOrg() *api.Organization {
	return &api.Organization{ID: "p-1", CompanyName: "CleanCity Ltd"}
}

func newTestStore(storage Storage) *Store {
	return NewStore(storage, slog.Default())
}

func TestHydrate_EmptyStorage(t *testing.T) {
	s := newTestStore(NewMemStorage())
	require.Equal(t, StateUninitialized, s.State())

	s.Hydrate()

	assert.True(t, s.Hydrated())
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.False(t, s.IsAuthenticated())
}

func TestHydrate_MalformedContent(t *testing.T) {
	tests := []struct {
		name string
		seed func(m *MemStorage)
	}{
		{
			name: "garbage user JSON",
			seed: func(m *MemStorage) {
				m.Set(KeyUser, []byte("{not json"))
				m.Set(KeyAccessToken, []byte("tok"))
			},
		},
		{
			name: "token without user",
			seed: func(m *MemStorage) {
				m.Set(KeyAccessToken, []byte("tok"))
				m.Set(KeyRefreshToken, []byte("ref"))
			},
		},
		{
			name: "user without token",
			seed: func(m *MemStorage) {
				data, _ := json.Marshal(testUser())
				m.Set(KeyUser, data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemStorage()
			tt.seed(m)
			s := newTestStore(m)

			s.Hydrate()

			assert.True(t, s.Hydrated(), "hydration must complete")
			assert.Equal(t, StateUnauthenticated, s.State())
			assert.Empty(t, s.AccessToken(), "partial session must not leak a token")
		})
	}
}

func TestHydrate_ValidSession(t *testing.T) {
	m := NewMemStorage()
	userData, _ := json.Marshal(testUser())
	orgData, _ := json.Marshal(testOrg())
	m.Set(KeyUser, userData)
	m.Set(KeyOrganization, orgData)
	m.Set(KeyAccessToken, []byte("access-1"))
	m.Set(KeyRefreshToken, []byte("refresh-1"))
	m.Set(KeyTempPassword, []byte("false"))

	s := newTestStore(m)
	s.Hydrate()

	assert.Equal(t, StateAuthenticated, s.State())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "u-1", s.User().ID)
	assert.Equal(t, "CleanCity Ltd", s.Organization().CompanyName)
	assert.Equal(t, "access-1", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())
}

func TestHydrate_TempPasswordFlag(t *testing.T) {
	m := NewMemStorage()
	userData, _ := json.Marshal(testUser())
	m.Set(KeyUser, userData)
	m.Set(KeyAccessToken, []byte("access-1"))
	m.Set(KeyTempPassword, []byte("true"))

	s := newTestStore(m)
	s.Hydrate()

	assert.Equal(t, StateAuthenticatedTempPassword, s.State())
}

func TestHydrate_MalformedTempFlagReadsFalse(t *testing.T) {
	m := NewMemStorage()
	userData, _ := json.Marshal(testUser())
	m.Set(KeyUser, userData)
	m.Set(KeyAccessToken, []byte("access-1"))
	m.Set(KeyTempPassword, []byte("maybe"))

	s := newTestStore(m)
	s.Hydrate()

	assert.Equal(t, StateAuthenticated, s.State())
}

func TestLogin_ThenLogout_LeavesNoKeys(t *testing.T) {
	m := NewMemStorage()
	s := newTestStore(m)
	s.Hydrate()

	err := s.Login(context.Background(), testUser(), testOrg(), "access-1", "refresh-1", false)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, s.State())

	require.NoError(t, s.Logout())

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Zero(t, m.Len(), "logout must clear every session key")
	assert.NoError(t, s.Logout(), "logout is idempotent")
}

func TestLogin_PersistsAllKeys(t *testing.T) {
	m := NewMemStorage()
	s := newTestStore(m)
	s.Hydrate()

	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-1", "refresh-1", true))

	for _, key := range []string{KeyUser, KeyOrganization, KeyAccessToken, KeyRefreshToken, KeyTempPassword} {
		_, ok, _ := m.Get(key)
		assert.True(t, ok, "key %s should be persisted", key)
	}

	// A second store hydrating from the same storage sees the same session.
	s2 := newTestStore(m)
	s2.Hydrate()
	assert.Equal(t, StateAuthenticatedTempPassword, s2.State())
	assert.Equal(t, "u-1", s2.User().ID)
}

func TestLogin_FetchesSummaryWhenNotTemp(t *testing.T) {
	s := newTestStore(NewMemStorage())
	s.Hydrate()

	var fetchedWithToken string
	s.SetSummaryFetcher(func(ctx context.Context) (json.RawMessage, error) {
		fetchedWithToken = s.AccessToken()
		return json.RawMessage(`{"totalCustomers": 42}`), nil
	})

	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-1", "", false))

	assert.Equal(t, "access-1", fetchedWithToken, "summary fetch must use the new token")
	cache := s.DashboardSummary()
	require.NotNil(t, cache)
	assert.JSONEq(t, `{"totalCustomers": 42}`, string(cache.PSPInfo))
	assert.False(t, cache.LastFetched.IsZero())
}

func TestLogin_SummaryFailureDoesNotRollBack(t *testing.T) {
	s := newTestStore(NewMemStorage())
	s.Hydrate()
	s.SetSummaryFetcher(func(ctx context.Context) (json.RawMessage, error) {
		return nil, errors.New("summary endpoint down")
	})

	err := s.Login(context.Background(), testUser(), testOrg(), "access-1", "refresh-1", false)

	require.NoError(t, err, "summary failure is swallowed")
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Nil(t, s.DashboardSummary())
}

func TestLogin_TempPasswordSkipsSummaryFetch(t *testing.T) {
	s := newTestStore(NewMemStorage())
	s.Hydrate()

	called := false
	s.SetSummaryFetcher(func(ctx context.Context) (json.RawMessage, error) {
		called = true
		return json.RawMessage(`{}`), nil
	})

	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-1", "", true))
	assert.False(t, called)
}

func TestUpdateTokens_RotatesPairOnly(t *testing.T) {
	m := NewMemStorage()
	s := newTestStore(m)
	s.Hydrate()
	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-1", "refresh-1", false))

	require.NoError(t, s.UpdateTokens("access-2", "refresh-2"))

	assert.Equal(t, "access-2", s.AccessToken())
	assert.Equal(t, "refresh-2", s.RefreshToken())
	assert.Equal(t, "u-1", s.User().ID, "user untouched by rotation")

	access, _, _ := m.Get(KeyAccessToken)
	refresh, _, _ := m.Get(KeyRefreshToken)
	assert.Equal(t, "access-2", string(access))
	assert.Equal(t, "refresh-2", string(refresh))
}

func TestRefreshDashboardSummary_NoTokenIsNoop(t *testing.T) {
	s := newTestStore(NewMemStorage())
	s.Hydrate()

	called := false
	s.SetSummaryFetcher(func(ctx context.Context) (json.RawMessage, error) {
		called = true
		return json.RawMessage(`{}`), nil
	})

	require.NoError(t, s.RefreshDashboardSummary(context.Background()))
	assert.False(t, called)
}

func TestTempPasswordFlow_ClearsFlagOnRelogin(t *testing.T) {
	s := newTestStore(NewMemStorage())
	s.Hydrate()

	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "tmp-access", "", true))
	require.Equal(t, StateAuthenticatedTempPassword, s.State())

	// Password change completes by re-invoking Login with the flag cleared.
	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-2", "refresh-2", false))
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(NewMemStorage())

	snap := s.Snapshot()
	assert.False(t, snap.Hydrated)
	assert.Equal(t, StateUninitialized, snap.State)

	s.Hydrate()
	require.NoError(t, s.Login(context.Background(), testUser(), testOrg(), "access-1", "", false))

	snap = s.Snapshot()
	assert.True(t, snap.Hydrated)
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "admin", snap.Role)
}
