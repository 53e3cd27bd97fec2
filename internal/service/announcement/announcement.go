// internal/service/announcement/announcement.go
package announcement

import (
	"context"

	"cprice-service/internal/domain/announcement"
	"cprice-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// DashboardLimit caps the announcements shown on the dashboard.
	DashboardLimit = 5
)

type AnnouncementService struct {
	repo   *postgres.AnnouncementRepository
	logger *zap.Logger
}

func NewAnnouncementService(repo *postgres.AnnouncementRepository, logger *zap.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, logger: logger}
}

// Create publishes an announcement, active by default.
func (s *AnnouncementService) Create(ctx context.Context, createdBy string, req *announcement.CreateRequest) (*announcement.Announcement, error) {
	priority := req.Priority
	if priority == "" {
		priority = announcement.PriorityMedium
	}

	a := &announcement.Announcement{
		ID:        ulid.Make().String(),
		Title:     req.Title,
		Content:   req.Content,
		Priority:  priority,
		IsActive:  true,
		CreatedBy: createdBy,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement created", zap.String("id", a.ID), zap.String("priority", a.Priority))
	return s.repo.FindByID(ctx, a.ID)
}

// Get retrieves an announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*announcement.Announcement, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies partial changes to an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, req *announcement.UpdateRequest) (*announcement.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("announcement updated", zap.String("id", id))
	return a, nil
}

// UpdateStatusBatch toggles a set of announcements in one statement.
func (s *AnnouncementService) UpdateStatusBatch(ctx context.Context, req *announcement.BatchStatusRequest) (int64, error) {
	updated, err := s.repo.UpdateStatusBatch(ctx, req.IDs, req.IsActive)
	if err != nil {
		return 0, err
	}

	s.logger.Info("announcements batch updated",
		zap.Int("requested", len(req.IDs)),
		zap.Int64("updated", updated),
		zap.Bool("is_active", req.IsActive),
	)
	return updated, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("announcement deleted", zap.String("id", id))
	return nil
}

// List retrieves announcements with filters.
func (s *AnnouncementService) List(ctx context.Context, filters *announcement.ListFilters) (*announcement.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &announcement.ListResponse{
		Data:       items,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListActive retrieves active announcements for the dashboard, high
// priority first.
func (s *AnnouncementService) ListActive(ctx context.Context, limit int) ([]announcement.Announcement, error) {
	if limit <= 0 {
		limit = DashboardLimit
	}
	return s.repo.ListActive(ctx, limit)
}
