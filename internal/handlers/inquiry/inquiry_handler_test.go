// internal/handlers/inquiry/inquiry_handler_test.go
package inquiry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	domain "cprice-service/internal/domain/inquiry"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/inquiry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.CustomerInquiry
}

func (s *stubRepo) Create(_ context.Context, i *domain.CustomerInquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	cp := *i
	s.rows[i.ID] = &cp
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id string) (*domain.CustomerInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.rows[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (s *stubRepo) List(_ context.Context, _ string, _ *domain.ListFilters) ([]domain.CustomerInquiry, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) ClaimPending(_ context.Context, id, userID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.rows[id]
	if !ok || i.Status != domain.StatusPending {
		return false, nil
	}
	release := now.Add(domain.AutoReleaseAfter)
	i.Status = domain.StatusAssigned
	i.AssignedTo = &userID
	i.AssignedAt = &now
	i.AutoReleaseAt = &release
	return true, nil
}

func (s *stubRepo) Release(_ context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	i.Status = domain.StatusPending
	i.AssignedTo = nil
	i.AssignedAt = nil
	i.AutoReleaseAt = nil
	i.UpdatedAt = now
	return nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id string, status domain.Status, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = now
	return nil
}

func (s *stubRepo) Assign(_ context.Context, id, userID string, now time.Time) error {
	return s.UpdateStatus(nil, id, domain.StatusAssigned, now)
}

func (s *stubRepo) ReleaseExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type stubUsers struct{}

func (stubUsers) ExistsActive(_ context.Context, _ string) (bool, error) { return true, nil }

// asUser fakes the auth middleware by injecting the caller identity the
// handlers read from the request context.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter(t *testing.T, repo *stubRepo, userID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewInquiryService(repo, stubUsers{}, nil, zap.NewNop())
	h := NewInquiryHandler(svc)

	r := gin.New()
	r.POST("/public/inquiries", h.Submit)

	authed := r.Group("", asUser(userID, role))
	authed.GET("/inquiries/:id", h.Get)
	authed.POST("/claim-inquiry/:id", h.Claim)
	authed.POST("/release-inquiry/:id", h.Release)
	authed.PUT("/inquiry/:id/status", h.UpdateStatus)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var envelope response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	return w, envelope
}

func seedAssigned(t *testing.T, repo *stubRepo, owner string) string {
	t.Helper()
	now := time.Now()
	release := now.Add(domain.AutoReleaseAfter)
	i := &domain.CustomerInquiry{
		ID:            "inq_test01",
		CustomerName:  "Wang Wei",
		CustomerEmail: "wangwei@example.com",
		CustomerPhone: "13812345678",
		Status:        domain.StatusAssigned,
		AssignedTo:    &owner,
		AssignedAt:    &now,
		AutoReleaseAt: &release,
	}
	require.NoError(t, repo.Create(nil, i))
	return i.ID
}

func TestSubmitReturnsCreatedEnvelope(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodPost, "/public/inquiries", `{
		"customerName": "Li Na",
		"customerEmail": "lina@example.com",
		"customerPhone": "13987654321",
		"customerRegion": "Beijing",
		"businessType": "air_freight",
		"origin": "Beijing",
		"destination": "Frankfurt"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	id, _ := data["id"].(string)
	assert.True(t, strings.HasPrefix(id, "inq_"))
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodPost, "/public/inquiries", `{"customerName": "Li Na"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func TestClaimConflictAnswersNotFound(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	id := seedAssigned(t, repo, "bob")
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodPost, "/claim-inquiry/"+id, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "inquiry not found or already claimed", envelope.Message)
}

func TestGetMissingAnswersNotFound(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodGet, "/inquiries/inq_nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, envelope.Success)
}

// A status update against an inquiry held by someone else answers 404,
// not 403: this route treats ownership as part of the lookup, so the
// caller cannot tell an unowned inquiry from a missing one.
func TestUpdateStatusByNonOwnerAnswersNotFound(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	id := seedAssigned(t, repo, "bob")
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodPut, "/inquiry/"+id+"/status", `{"status": "quoted"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, envelope.Success)
}

func TestReleaseByNonOwnerAnswersForbidden(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	id := seedAssigned(t, repo, "bob")
	r := newTestRouter(t, repo, "alice", "user")

	w, envelope := do(r, http.MethodPost, "/release-inquiry/"+id, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, envelope.Success)
}

func TestReleaseByAdminSucceeds(t *testing.T) {
	repo := &stubRepo{rows: map[string]*domain.CustomerInquiry{}}
	id := seedAssigned(t, repo, "bob")
	r := newTestRouter(t, repo, "alice", "admin")

	w, envelope := do(r, http.MethodPost, "/release-inquiry/"+id, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, envelope.Success)
}
