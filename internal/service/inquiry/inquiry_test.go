package inquiry

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"cprice-service/internal/domain/inquiry"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory Repository with the same conditional-update
// semantics as the SQL implementation: the pending check and the
// assignment happen under one lock, so exactly one concurrent claim wins.
type fakeRepo struct {
	mu   sync.Mutex
	rows map[string]*inquiry.CustomerInquiry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*inquiry.CustomerInquiry{}}
}

func (f *fakeRepo) Create(_ context.Context, i *inquiry.CustomerInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	cp := *i
	f.rows[i.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*inquiry.CustomerInquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, viewerID string, filters *inquiry.ListFilters) ([]inquiry.CustomerInquiry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []inquiry.CustomerInquiry{}
	for _, i := range f.rows {
		if filters.Status != "" && string(i.Status) != filters.Status {
			continue
		}
		if filters.AssignedTo == "me" && (i.AssignedTo == nil || *i.AssignedTo != viewerID) {
			continue
		}
		out = append(out, *i)
	}
	total := int64(len(out))
	start := (filters.Page - 1) * filters.PageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + filters.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeRepo) ClaimPending(_ context.Context, id, userID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[id]
	if !ok || i.Status != inquiry.StatusPending {
		return false, nil
	}
	release := now.Add(inquiry.AutoReleaseAfter)
	i.Status = inquiry.StatusAssigned
	i.AssignedTo = &userID
	i.AssignedAt = &now
	i.AutoReleaseAt = &release
	i.UpdatedAt = now
	return true, nil
}

func (f *fakeRepo) Release(_ context.Context, id string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	i.Status = inquiry.StatusPending
	i.AssignedTo = nil
	i.AssignedAt = nil
	i.AutoReleaseAt = nil
	i.UpdatedAt = now
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status inquiry.Status, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = now
	return nil
}

func (f *fakeRepo) Assign(_ context.Context, id, userID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	release := now.Add(inquiry.AutoReleaseAfter)
	i.Status = inquiry.StatusAssigned
	i.AssignedTo = &userID
	i.AssignedAt = &now
	i.AutoReleaseAt = &release
	i.UpdatedAt = now
	return nil
}

func (f *fakeRepo) ReleaseExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var released int64
	for _, i := range f.rows {
		if i.Status == inquiry.StatusAssigned && i.AutoReleaseAt != nil && !i.AutoReleaseAt.After(now) {
			i.Status = inquiry.StatusPending
			i.AssignedTo = nil
			i.AssignedAt = nil
			i.AutoReleaseAt = nil
			i.UpdatedAt = now
			released++
		}
	}
	return released, nil
}

type fakeUsers struct {
	active map[string]bool
}

func (f *fakeUsers) ExistsActive(_ context.Context, id string) (bool, error) {
	return f.active[id], nil
}

func newService(repo *fakeRepo) *InquiryService {
	users := &fakeUsers{active: map[string]bool{"alice": true, "bob": true}}
	return NewInquiryService(repo, users, nil, zap.NewNop())
}

func seedPending(t *testing.T, repo *fakeRepo) string {
	t.Helper()
	i := &inquiry.CustomerInquiry{
		ID:             ulid.Make().String(),
		CustomerName:   "Wang Wei",
		CustomerEmail:  "wangwei@example.com",
		CustomerPhone:  "13812345678",
		CustomerRegion: "Shanghai",
		BusinessType:   "sea_freight",
		Origin:         "Shanghai",
		Destination:    "Rotterdam",
		Status:         inquiry.StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), i))
	return i.ID
}

func TestClaimAssignsToCaller(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	got, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	assert.Equal(t, inquiry.StatusAssigned, got.Status)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "alice", *got.AssignedTo)
	require.NotNil(t, got.AssignedAt)
	require.NotNil(t, got.AutoReleaseAt)
	assert.Equal(t, got.AssignedAt.Add(inquiry.AutoReleaseAfter), *got.AutoReleaseAt)
}

func TestClaimMissingInquiry(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Claim(context.Background(), "nope", inquiry.Viewer{UserID: "alice"})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestClaimAlreadyAssigned(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "bob"})
	assert.ErrorIs(t, err, xerrors.ErrAlreadyClaimed)
}

func TestClaimRaceSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	const claimers = 32
	var wg sync.WaitGroup
	errs := make([]error, claimers)

	for n := 0; n < claimers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
		}(n)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, xerrors.ErrAlreadyClaimed)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestReleaseByOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), id, inquiry.Viewer{UserID: "alice"}))

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusPending, got.Status)
	assert.Nil(t, got.AssignedTo)
	assert.Nil(t, got.AssignedAt)
	assert.Nil(t, got.AutoReleaseAt)
}

func TestReleaseByNonOwnerForbidden(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	err = svc.Release(context.Background(), id, inquiry.Viewer{UserID: "bob"})
	assert.ErrorIs(t, err, xerrors.ErrPermissionDenied)
}

func TestReleaseByAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	err = svc.Release(context.Background(), id, inquiry.Viewer{UserID: "bob", Admin: true})
	assert.NoError(t, err)
}

func TestReleaseUnassigned(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	// Non-admin callers do not own a pending inquiry.
	err := svc.Release(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	assert.ErrorIs(t, err, xerrors.ErrPermissionDenied)

	// For an admin, releasing an already-pending inquiry is a no-op success.
	err = svc.Release(context.Background(), id, inquiry.Viewer{UserID: "root", Admin: true})
	assert.NoError(t, err)
}

func TestUpdateStatusByOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)
	alice := inquiry.Viewer{UserID: "alice"}

	_, err := svc.Claim(context.Background(), id, alice)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "quoted"})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusQuoted, got.Status)

	// Assignment survives the transition.
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "alice", *got.AssignedTo)

	got, err = svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusCompleted, got.Status)
}

func TestUpdateStatusSkipsQuoted(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)
	alice := inquiry.Viewer{UserID: "alice"}

	_, err := svc.Claim(context.Background(), id, alice)
	require.NoError(t, err)

	// Jumping straight from assigned to completed is fine.
	got, err := svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusCompleted, got.Status)
}

func TestUpdateStatusBackwards(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)
	alice := inquiry.Viewer{UserID: "alice"}

	_, err := svc.Claim(context.Background(), id, alice)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "quoted"})
	require.NoError(t, err)

	// Moving back to assigned is allowed.
	got, err := svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "assigned"})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusAssigned, got.Status)
}

func TestUpdateStatusRejectsPendingTarget(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)
	alice := inquiry.Viewer{UserID: "alice"}

	_, err := svc.Claim(context.Background(), id, alice)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidStatus)
}

// Inquiries held by someone else answer not-found on the status path, so
// the response never reveals whether the id exists.
func TestUpdateStatusByNonOwnerHidden(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), id, inquiry.Viewer{UserID: "bob"}, &inquiry.UpdateStatusRequest{Status: "quoted"})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	// No admin bypass here: admins change ownership through Reassign instead.
	_, err = svc.UpdateStatus(context.Background(), id, inquiry.Viewer{UserID: "root", Admin: true}, &inquiry.UpdateStatusRequest{Status: "quoted"})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestReassignToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	target := "bob"
	got, err := svc.Reassign(context.Background(), id, &inquiry.AssignRequest{AssignedTo: &target})
	require.NoError(t, err)

	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, "bob", *got.AssignedTo)
	assert.Equal(t, inquiry.StatusAssigned, got.Status)
}

func TestReassignToInactiveUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	target := "mallory"
	_, err := svc.Reassign(context.Background(), id, &inquiry.AssignRequest{AssignedTo: &target})
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}

func TestReassignNilReleases(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	got, err := svc.Reassign(context.Background(), id, &inquiry.AssignRequest{AssignedTo: nil})
	require.NoError(t, err)

	assert.Equal(t, inquiry.StatusPending, got.Status)
	assert.Nil(t, got.AssignedTo)
}

func TestReassignCompletedInquiry(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)
	alice := inquiry.Viewer{UserID: "alice"}

	_, err := svc.Claim(context.Background(), id, alice)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), id, alice, &inquiry.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)

	// Admin override ignores current status, resetting it to assigned.
	target := "bob"
	got, err := svc.Reassign(context.Background(), id, &inquiry.AssignRequest{AssignedTo: &target})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusAssigned, got.Status)
	assert.Equal(t, "bob", *got.AssignedTo)
}

func TestAutoReleaseExpired(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	expired := seedPending(t, repo)
	fresh := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), expired, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)
	_, err = svc.Claim(context.Background(), fresh, inquiry.Viewer{UserID: "bob"})
	require.NoError(t, err)

	// Backdate the first assignment past the holding period.
	repo.mu.Lock()
	past := time.Now().Add(-inquiry.AutoReleaseAfter - time.Hour)
	deadline := past.Add(inquiry.AutoReleaseAfter)
	repo.rows[expired].AssignedAt = &past
	repo.rows[expired].AutoReleaseAt = &deadline
	repo.mu.Unlock()

	released, err := svc.AutoReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	got, err := repo.FindByID(context.Background(), expired)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusPending, got.Status)
	assert.Nil(t, got.AssignedTo)

	got, err = repo.FindByID(context.Background(), fresh)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusAssigned, got.Status)

	// A second sweep finds nothing left to release.
	released, err = svc.AutoReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), released)
}

func TestListRedactsOtherAssignees(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), inquiry.Viewer{UserID: "bob"}, &inquiry.ListFilters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	assert.Equal(t, "wa***@example.com", resp.Data[0].CustomerEmail)
	assert.Equal(t, "138****5678", resp.Data[0].CustomerPhone)
}

// TestClaimHandoff walks an inquiry through a contested claim: one agent
// wins, the rival is turned away, an admin clears the assignment, and the
// rival claims the freed inquiry.
func TestClaimHandoff(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	id := seedPending(t, repo)

	_, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "alice"})
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "bob"})
	require.ErrorIs(t, err, xerrors.ErrAlreadyClaimed)

	_, err = svc.Reassign(context.Background(), id, &inquiry.AssignRequest{AssignedTo: nil})
	require.NoError(t, err)

	got, err := svc.Claim(context.Background(), id, inquiry.Viewer{UserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", *got.AssignedTo)
}

func TestListPaginationDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	for n := 0; n < 3; n++ {
		seedPending(t, repo)
	}

	resp, err := svc.List(context.Background(), inquiry.Viewer{UserID: "alice"}, &inquiry.ListFilters{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, defaultPageSize, resp.PageSize)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestListBeyondLastPage(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	for n := 0; n < 3; n++ {
		seedPending(t, repo)
	}

	resp, err := svc.List(context.Background(), inquiry.Viewer{UserID: "alice"}, &inquiry.ListFilters{Page: 5, PageSize: 10})
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 5, resp.Page)
}

func TestSubmitCreatesPending(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	got, err := svc.Submit(context.Background(), &inquiry.SubmitInquiryRequest{
		CustomerName:   "Li Na",
		CustomerEmail:  "lina@example.com",
		CustomerPhone:  "13987654321",
		CustomerRegion: "Beijing",
		BusinessType:   "air_freight",
		Origin:         "Beijing",
		Destination:    "Frankfurt",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.ID, "inq_"))
	assert.Equal(t, inquiry.StatusPending, got.Status)
	assert.Nil(t, got.AssignedTo)
}
