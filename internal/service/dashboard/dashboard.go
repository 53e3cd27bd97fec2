// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"

	"cprice-service/internal/domain/announcement"
	"cprice-service/internal/domain/inquiry"
	"cprice-service/internal/repository/postgres"

	"go.uber.org/zap"
)

const (
	announcementLimit = 5
	inquirySection    = 10
)

// Stats summarizes the catalogue and inquiry workload for the dashboard header.
type Stats struct {
	TotalPrices      int64 `json:"total_prices"`
	TotalInquiries   int64 `json:"total_inquiries"`
	PendingInquiries int64 `json:"pending_inquiries"`
	MyInquiries      int64 `json:"my_inquiries"`
}

// Overview is the single payload behind the dashboard endpoint.
type Overview struct {
	Announcements     []announcement.Announcement `json:"announcements"`
	PendingInquiries  []inquiry.CustomerInquiry   `json:"pending_inquiries"`
	AssignedInquiries []inquiry.CustomerInquiry   `json:"assigned_inquiries"`
	MyInquiries       []inquiry.CustomerInquiry   `json:"my_inquiries"`
	Stats             Stats                       `json:"stats"`
}

type DashboardService struct {
	inquiries     *postgres.InquiryRepository
	announcements *postgres.AnnouncementRepository
	prices        *postgres.PriceRepository
	logger        *zap.Logger
}

func NewDashboardService(
	inquiries *postgres.InquiryRepository,
	announcements *postgres.AnnouncementRepository,
	prices *postgres.PriceRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		inquiries:     inquiries,
		announcements: announcements,
		prices:        prices,
		logger:        logger,
	}
}

// Overview assembles the dashboard for one viewer. Inquiries held by other
// users arrive with contact details masked; the viewer's own section and
// the pending pool are unmasked.
func (s *DashboardService) Overview(ctx context.Context, v inquiry.Viewer) (*Overview, error) {
	announcements, err := s.announcements.ListActive(ctx, announcementLimit)
	if err != nil {
		return nil, err
	}

	pending, err := s.inquiries.ListPending(ctx, inquirySection)
	if err != nil {
		return nil, err
	}

	assigned, err := s.inquiries.ListAssignedToOthers(ctx, v.UserID, inquirySection)
	if err != nil {
		return nil, err
	}

	mine, err := s.inquiries.ListMine(ctx, v.UserID, inquirySection)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats(ctx, v.UserID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Announcements:     announcements,
		PendingInquiries:  pending,
		AssignedInquiries: inquiry.RedactAll(assigned, v),
		MyInquiries:       mine,
		Stats:             *stats,
	}, nil
}

func (s *DashboardService) stats(ctx context.Context, userID string) (*Stats, error) {
	prices, err := s.prices.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.inquiries.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.inquiries.CountByStatus(ctx, inquiry.StatusPending)
	if err != nil {
		return nil, err
	}
	mine, err := s.inquiries.CountAssignedTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalPrices:      prices,
		TotalInquiries:   total,
		PendingInquiries: pending,
		MyInquiries:      mine,
	}, nil
}
