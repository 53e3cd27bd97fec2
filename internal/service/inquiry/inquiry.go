// internal/service/inquiry/inquiry.go
package inquiry

import (
	"context"
	"time"

	"cprice-service/internal/domain/inquiry"
	"cprice-service/internal/metrics"
	xerrors "cprice-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Repository is the persistence surface the workflow needs. The claim
// predicate lives inside ClaimPending so concurrent claims resolve in the
// store, not here.
type Repository interface {
	Create(ctx context.Context, i *inquiry.CustomerInquiry) error
	FindByID(ctx context.Context, id string) (*inquiry.CustomerInquiry, error)
	List(ctx context.Context, viewerID string, filters *inquiry.ListFilters) ([]inquiry.CustomerInquiry, int64, error)
	ClaimPending(ctx context.Context, id, userID string, now time.Time) (bool, error)
	Release(ctx context.Context, id string, now time.Time) error
	UpdateStatus(ctx context.Context, id string, status inquiry.Status, now time.Time) error
	Assign(ctx context.Context, id, userID string, now time.Time) error
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserDirectory validates reassignment targets.
type UserDirectory interface {
	ExistsActive(ctx context.Context, id string) (bool, error)
}

// Notifier receives workflow events for fan-out (websocket feed). May be nil.
type Notifier interface {
	Notify(event string, payload interface{})
}

const (
	EventSubmitted    = "inquiry.submitted"
	EventClaimed      = "inquiry.claimed"
	EventReleased     = "inquiry.released"
	EventAutoReleased = "inquiry.auto_released"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type InquiryService struct {
	repo     Repository
	users    UserDirectory
	notifier Notifier
	logger   *zap.Logger
}

func NewInquiryService(repo Repository, users UserDirectory, notifier Notifier, logger *zap.Logger) *InquiryService {
	return &InquiryService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit accepts a public inquiry form and stores it as pending.
func (s *InquiryService) Submit(ctx context.Context, req *inquiry.SubmitInquiryRequest) (*inquiry.CustomerInquiry, error) {
	i := &inquiry.CustomerInquiry{
		ID:                     "inq_" + ulid.Make().String(),
		CustomerName:           req.CustomerName,
		CustomerEmail:          req.CustomerEmail,
		CustomerPhone:          req.CustomerPhone,
		CustomerRegion:         req.CustomerRegion,
		BusinessType:           req.BusinessType,
		Origin:                 req.Origin,
		Destination:            req.Destination,
		CargoDescription:       req.CargoDescription,
		EstimatedWeight:        req.EstimatedWeight,
		EstimatedVolume:        req.EstimatedVolume,
		ExpectedShipDate:       req.ExpectedShipDate,
		AdditionalRequirements: req.AdditionalRequirements,
		Status:                 inquiry.StatusPending,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	metrics.RecordInquirySubmitted()
	s.notify(EventSubmitted, map[string]interface{}{"id": i.ID, "business_type": i.BusinessType})
	s.logger.Info("inquiry submitted", zap.String("id", i.ID))
	return i, nil
}

// Get retrieves a single inquiry, masked for the viewer.
func (s *InquiryService) Get(ctx context.Context, id string, v inquiry.Viewer) (*inquiry.CustomerInquiry, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	masked := inquiry.Redact(*i, v)
	return &masked, nil
}

// List retrieves inquiries with filters, masked for the viewer.
func (s *InquiryService) List(ctx context.Context, v inquiry.Viewer, filters *inquiry.ListFilters) (*inquiry.ListResponse, error) {
	normalizePage(&filters.Page, &filters.PageSize)

	items, total, err := s.repo.List(ctx, v.UserID, filters)
	if err != nil {
		return nil, err
	}

	return &inquiry.ListResponse{
		Data:       inquiry.RedactAll(items, v),
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages(total, filters.PageSize),
	}, nil
}

// Claim attempts to take ownership of a pending inquiry for the caller.
// Exactly one concurrent caller wins; losers get ErrAlreadyClaimed, which is
// also the answer for an id that does not exist.
func (s *InquiryService) Claim(ctx context.Context, id string, v inquiry.Viewer) (*inquiry.CustomerInquiry, error) {
	won, err := s.repo.ClaimPending(ctx, id, v.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	if !won {
		metrics.RecordClaimAttempt("lost")
		// Best-effort distinction between a missing row and a lost race.
		if _, err := s.repo.FindByID(ctx, id); xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNotFound
		}
		return nil, xerrors.ErrAlreadyClaimed
	}

	metrics.RecordClaimAttempt("won")
	s.notify(EventClaimed, map[string]interface{}{"id": id, "assigned_to": v.UserID})
	s.logger.Info("inquiry claimed", zap.String("id", id), zap.String("user_id", v.UserID))

	return s.repo.FindByID(ctx, id)
}

// Release returns an inquiry to the pool. Only the current assignee or an
// admin may release. Releasing an already-pending inquiry is a trivial
// success.
func (s *InquiryService) Release(ctx context.Context, id string, v inquiry.Viewer) error {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !i.OwnedBy(v.UserID) && !v.Admin {
		return xerrors.ErrPermissionDenied
	}

	if err := s.repo.Release(ctx, id, time.Now()); err != nil {
		return err
	}

	trigger := "owner"
	if !i.OwnedBy(v.UserID) {
		trigger = "admin"
	}
	metrics.RecordRelease(trigger)
	s.notify(EventReleased, map[string]interface{}{"id": id})
	s.logger.Info("inquiry released", zap.String("id", id), zap.String("trigger", trigger))
	return nil
}

// UpdateStatus advances the lifecycle of an inquiry the caller owns. This
// path has no admin override; admins use Reassign. Assignment fields are
// untouched, so an inquiry moved back to assigned keeps its holder and
// release deadline.
func (s *InquiryService) UpdateStatus(ctx context.Context, id string, v inquiry.Viewer, req *inquiry.UpdateStatusRequest) (*inquiry.CustomerInquiry, error) {
	target := inquiry.Status(req.Status)
	if !target.AdvanceTarget() {
		return nil, xerrors.ErrInvalidStatus
	}

	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Ownership is part of the lookup on this path: an inquiry held by
	// someone else is indistinguishable from a missing one, so callers
	// cannot probe other assignees' workloads.
	if !i.OwnedBy(v.UserID) {
		return nil, xerrors.ErrNotFound
	}

	if err := s.repo.UpdateStatus(ctx, id, target, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("inquiry status updated",
		zap.String("id", id),
		zap.String("from", string(i.Status)),
		zap.String("to", string(target)),
	)
	return s.repo.FindByID(ctx, id)
}

// Reassign is the administrative override: a nil target releases the
// inquiry, a concrete target takes it over regardless of current status.
func (s *InquiryService) Reassign(ctx context.Context, id string, req *inquiry.AssignRequest) (*inquiry.CustomerInquiry, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if req.AssignedTo == nil {
		if err := s.repo.Release(ctx, id, time.Now()); err != nil {
			return nil, err
		}
		metrics.RecordRelease("admin")
		s.notify(EventReleased, map[string]interface{}{"id": id})
		return s.repo.FindByID(ctx, id)
	}

	ok, err := s.users.ExistsActive(ctx, *req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}

	if err := s.repo.Assign(ctx, id, *req.AssignedTo, time.Now()); err != nil {
		return nil, err
	}

	metrics.RecordRelease("reassign")
	s.notify(EventClaimed, map[string]interface{}{"id": id, "assigned_to": *req.AssignedTo})
	s.logger.Info("inquiry reassigned", zap.String("id", id), zap.String("assigned_to", *req.AssignedTo))
	return s.repo.FindByID(ctx, id)
}

// AutoReleaseExpired sweeps every assigned inquiry past its holding
// deadline back to the pool and reports how many were released.
func (s *InquiryService) AutoReleaseExpired(ctx context.Context) (int64, error) {
	released, err := s.repo.ReleaseExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if released > 0 {
		metrics.RecordAutoReleased(released)
		s.notify(EventAutoReleased, map[string]interface{}{"count": released})
		s.logger.Info("expired inquiries released", zap.Int64("count", released))
	}
	return released, nil
}

func (s *InquiryService) notify(event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Notify(event, payload)
	}
}

func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = defaultPageSize
	}
	if *pageSize > maxPageSize {
		*pageSize = maxPageSize
	}
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
