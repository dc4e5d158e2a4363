package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens implements TokenSource for tests.
type fakeTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	updates int
}

func (f *fakeTokens) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access
}

func (f *fakeTokens) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

func (f *fakeTokens) UpdateTokens(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = access
	f.refresh = refresh
	f.updates++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &fakeTokens{access: "access-1", refresh: "refresh-1"}
	c := New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second, RateLimit: 1000}, tokens)
	return c, tokens
}

func TestLogin_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "login must not send a bearer token")
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ops@wastepay.example", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"user":         map[string]any{"id": "u-1", "email": "ops@wastepay.example", "role": "admin", "isActive": true},
			"psp":          map[string]any{"id": "p-1", "companyName": "CleanCity Ltd"},
			"accessToken":  "access-new",
			"refreshToken": "refresh-new",
		})
	}))

	result, err := c.Login(context.Background(), "ops@wastepay.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", result.User.ID)
	assert.Equal(t, "CleanCity Ltd", result.Organization.CompanyName)
	assert.Equal(t, "access-new", result.AccessToken)
	assert.False(t, result.RequirePasswordChange)
}

func TestLogin_TemporaryPasswordChallenge(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"requirePasswordChange": true,
			"changePasswordToken":   "chg-token",
			"email":                 "new@wastepay.example",
		})
	}))

	result, err := c.Login(context.Background(), "new@wastepay.example", "temp123")
	require.NoError(t, err)
	assert.True(t, result.RequirePasswordChange)
	assert.Equal(t, "chg-token", result.ChangePasswordToken)
	assert.Nil(t, result.User)
}

func TestLogin_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		wantErr error
	}{
		{"bad credentials", http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrBadCredentials},
		{"inactive account", http.StatusForbidden, "ACCOUNT_INACTIVE", ErrAccountInactive},
		{"plain forbidden", http.StatusForbidden, "", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"code": tt.code})
			}))

			_, err := c.Login(context.Background(), "a@b.c", "x")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthenticatedRequest_RefreshRetryOn401(t *testing.T) {
	var calls []string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path+"|"+r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/customers":
			if r.Header.Get("Authorization") == "Bearer access-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"customers":  []map[string]any{{"id": "c-1", "firstName": "Ada"}},
				"pagination": map[string]any{"page": 1, "totalPages": 1, "total": 1, "limit": 20},
			})
		case "/auth/refresh":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			require.Equal(t, "refresh-1", body["refreshToken"])
			json.NewEncoder(w).Encode(map[string]string{
				"accessToken":  "access-2",
				"refreshToken": "refresh-2",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	page, err := c.ListCustomers(context.Background(), ListQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c-1", page.Items[0].ID)

	// Both halves of the pair rotated together.
	assert.Equal(t, "access-2", tokens.AccessToken())
	assert.Equal(t, "refresh-2", tokens.RefreshToken())
	assert.Equal(t, 1, tokens.updates)

	require.Len(t, calls, 3)
	assert.Contains(t, calls[0], "/customers")
	assert.Contains(t, calls[1], "/auth/refresh")
	assert.Contains(t, calls[2], "Bearer access-2")
}

func TestAuthenticatedRequest_NoTokenShortCircuits(t *testing.T) {
	served := false
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served = true
	}))
	tokens.access = ""
	tokens.refresh = ""

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, served, "request must not reach the server without a token")
}

func TestPagination_FieldNameDialects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Pagination
	}{
		{
			name: "short names",
			body: `{"page": 2, "totalPages": 14, "total": 312, "limit": 20}`,
			want: Pagination{CurrentPage: 2, TotalPages: 14, TotalItems: 312, ItemsPerPage: 20},
		},
		{
			name: "long names",
			body: `{"currentPage": 3, "totalPages": 5, "totalItems": 98, "itemsPerPage": 20}`,
			want: Pagination{CurrentPage: 3, TotalPages: 5, TotalItems: 98, ItemsPerPage: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pagination
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{
		Page:      3,
		PageSize:  50,
		Search:    "adewale",
		SortBy:    "createdAt",
		SortOrder: "desc",
		Filters:   map[string]string{"status": "active", "ward": "", "propertyType": "residential"},
	}

	v := q.Values()
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "50", v.Get("limit"))
	assert.Equal(t, "adewale", v.Get("search"))
	assert.Equal(t, "createdAt", v.Get("sortBy"))
	assert.Equal(t, "desc", v.Get("sortOrder"))
	assert.Equal(t, "active", v.Get("status"))
	assert.Equal(t, "residential", v.Get("propertyType"))
	assert.False(t, v.Has("ward"), "empty filter values are omitted")
}

func TestServerError_MapsToUnavailable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.ListPayments(context.Background(), ListQuery{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientError_CarriesMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"code": "VALIDATION", "message": "ward is required"})
	}))

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "ward is required", apiErr.Message)
}
