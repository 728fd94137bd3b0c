package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"referral_rewards/internal/db"
	"referral_rewards/internal/db/dbtest"
	"referral_rewards/internal/domain"
	"referral_rewards/internal/metrics"
	"referral_rewards/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "api-test-secret"

type testServer struct {
	t      *testing.T
	store  *db.Store
	router *gin.Engine
}

type account struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ReferralCode string `json:"referralCode"`
	Coins        int64  `json:"coins"`
	Status       string `json:"status"`
	Token        string `json:"-"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := db.NewStore(dbtest.New(t))
	m := metrics.New("apitest")
	r := NewRouter(Deps{
		Store:     store,
		Services:  service.New(store, nil, m, testSecret),
		Metrics:   m,
		JWTSecret: testSecret,
	})
	return &testServer{t: t, store: store, router: r}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registers and logs in an account
func (s *testServer) signup(name string) account {
	s.t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":"%s@example.com","password":"password123"}`, name, name)
	rec := s.do(http.MethodPost, "/api/register", body, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var acc account
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &acc))

	rec = s.do(http.MethodPost, "/api/login", fmt.Sprintf(`{"email":"%s@example.com","password":"password123"}`, name), "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &login))
	acc.Token = login.Token
	return acc
}

func (s *testServer) makeAdmin(acc account) {
	s.t.Helper()
	require.NoError(s.t, s.store.UpdateUserFields(context.Background(), acc.ID, map[string]any{"role": domain.RoleAdmin}))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRegisterResponses(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/register", `{"name":"Alice","email":"alice@example.com","password":"pw123456","company":"Acme"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "pw123456")

	rec = s.do(http.MethodPost, "/api/register", `{"name":"Other","email":"alice@example.com","password":"pw123456"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrDuplicateEmail.Error(), errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/register", `{"email":"bob@example.com","password":"pw123456"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrMissingFields.Error(), errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/register", `{"name":"Bob","email":"not-an-email","password":"pw123456"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginResponses(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	assert.NotEmpty(t, alice.Token)

	rec := s.do(http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), errorOf(t, rec))

	require.NoError(t, s.store.UpdateUserFields(context.Background(), alice.ID, map[string]any{"status": domain.StatusInactive}))
	rec = s.do(http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, errorOf(t, rec), domain.StatusInactive)
}

func TestApplyReferralFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.SetSetting(context.Background(), domain.SettingReferralReward, "50"))
	alice := s.signup("alice")
	bob := s.signup("bob")

	body := fmt.Sprintf(`{"userId":%d,"referralCode":%q}`, bob.ID, alice.ReferralCode)
	rec := s.do(http.MethodPost, "/api/apply-referral", body, bob.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res ApplyReferralResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, ApplyReferralResponse{Success: true, Coins: 50, Added: 50}, res)

	rec = s.do(http.MethodPost, "/api/apply-referral", body, bob.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrAlreadyApplied.Error(), errorOf(t, rec))

	// The code alias is accepted
	self := fmt.Sprintf(`{"userId":%d,"code":%q}`, alice.ID, alice.ReferralCode)
	rec = s.do(http.MethodPost, "/api/apply-referral", self, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrSelfReferral.Error(), errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/apply-referral", fmt.Sprintf(`{"userId":%d,"referralCode":"NOPE0000"}`, alice.ID), alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrInvalidCode.Error(), errorOf(t, rec))

	rec = s.do(http.MethodPost, "/api/apply-referral", fmt.Sprintf(`{"userId":%d}`, alice.ID), alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrMissingFields.Error(), errorOf(t, rec))
}

func TestApplyReferralRequiresOwnToken(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	body := fmt.Sprintf(`{"userId":%d,"referralCode":%q}`, bob.ID, alice.ReferralCode)

	rec := s.do(http.MethodPost, "/api/apply-referral", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/apply-referral", body, alice.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/apply-referral", body, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLeaderboardIsPublic(t *testing.T) {
	s := newTestServer(t)
	for name, coins := range map[string]int64{"fifty": 50, "ten": 10, "thirty": 30} {
		acc := s.signup(name)
		require.NoError(t, s.store.UpdateUserFields(context.Background(), acc.ID, map[string]any{"coins": coins}))
	}
	rec := s.do(http.MethodGet, "/api/leaderboard", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	var board []service.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	require.Len(t, board, 3)
	assert.Equal(t, []int64{50, 30, 10}, []int64{board[0].Coins, board[1].Coins, board[2].Coins})
}

func TestPerUserRoutesAreSelfOrAdmin(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	bob := s.signup("bob")
	paths := []string{"/api/stats/%d", "/api/transactions/%d", "/api/analytics/%d", "/api/profile/%d"}

	for _, p := range paths {
		path := fmt.Sprintf(p, alice.ID)
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, "", alice.Token).Code, path)
		assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, path, "", bob.Token).Code, path)
		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, path, "", "").Code, path)
	}

	s.makeAdmin(bob)
	for _, p := range paths {
		path := fmt.Sprintf(p, alice.ID)
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, "", bob.Token).Code, path)
	}
	rec := s.do(http.MethodGet, "/api/profile/9999", "", bob.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/api/profile/abc", "", bob.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	path := fmt.Sprintf("/api/profile/%d", alice.ID)

	rec := s.do(http.MethodPut, path, `{"company":"Acme","phone":"555-0100"}`, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		Name    string `json:"name"`
		Company string `json:"company"`
		Phone   string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "555-0100", got.Phone)

	rec = s.do(http.MethodPut, path, `{"name":""}`, alice.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")
	root := s.signup("root")

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/users", "", alice.Token).Code)
	s.makeAdmin(root)

	rec := s.do(http.MethodGet, "/api/admin/users?page=1&page_size=10", "", root.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	var page service.UserPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Total)

	statusPath := fmt.Sprintf("/api/admin/users/%d/status", alice.ID)
	rec = s.do(http.MethodPut, statusPath, `{"status":"banned"}`, root.Token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.ErrInvalidStatus.Error(), errorOf(t, rec))

	rec = s.do(http.MethodPut, statusPath, `{"status":"suspended"}`, root.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/admin/users?status=suspended", "", root.Token)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Users, 1)
	assert.Equal(t, alice.ID, page.Users[0].ID)

	rec = s.do(http.MethodGet, "/api/admin/dashboard", "", root.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, int64(2), d.TotalUsers)
	assert.Equal(t, int64(1), d.ActiveUsers)
}

func TestUnexpectedErrorsAreOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		respondError(c, fmt.Errorf("load user: %w", errors.New("dial tcp 10.0.0.5:3306: connection refused")))
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", errorOf(t, rec))
	assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.5"))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `apitest_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}
