// internal/service/price/price.go
package price

import (
	"context"

	"cprice-service/internal/domain/price"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PriceService struct {
	repo          *postgres.PriceRepository
	businessTypes *postgres.BusinessTypeRepository
	logger        *zap.Logger
}

func NewPriceService(repo *postgres.PriceRepository, businessTypes *postgres.BusinessTypeRepository, logger *zap.Logger) *PriceService {
	return &PriceService{
		repo:          repo,
		businessTypes: businessTypes,
		logger:        logger,
	}
}

// Create adds a price entry under an existing business type.
func (s *PriceService) Create(ctx context.Context, createdBy string, req *price.CreatePriceRequest) (*price.Price, error) {
	if _, err := s.businessTypes.FindByID(ctx, req.BusinessTypeID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown business type")
		}
		return nil, err
	}

	p := &price.Price{
		ID:             ulid.Make().String(),
		BusinessTypeID: req.BusinessTypeID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		PriceType:      req.PriceType,
		Price:          req.Price,
		Currency:       req.Currency,
		Unit:           req.Unit,
		ValidFrom:      req.ValidFrom,
		ValidTo:        req.ValidTo,
		Description:    req.Description,
		IsActive:       true,
		CreatedBy:      createdBy,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("price created", zap.String("id", p.ID), zap.String("type", p.PriceType))
	return s.repo.FindByID(ctx, p.ID)
}

// Get retrieves a single active price.
func (s *PriceService) Get(ctx context.Context, id string) (*price.Price, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies partial changes to a price.
func (s *PriceService) Update(ctx context.Context, id string, req *price.UpdatePriceRequest) (*price.Price, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BusinessTypeID != nil {
		if _, err := s.businessTypes.FindByID(ctx, *req.BusinessTypeID); err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown business type")
			}
			return nil, err
		}
		p.BusinessTypeID = *req.BusinessTypeID
	}
	if req.Origin != nil {
		p.Origin = *req.Origin
	}
	if req.Destination != nil {
		p.Destination = *req.Destination
	}
	if req.PriceType != nil {
		p.PriceType = *req.PriceType
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.ValidFrom != nil {
		p.ValidFrom = *req.ValidFrom
	}
	if req.ValidTo != nil {
		p.ValidTo = req.ValidTo
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("price updated", zap.String("id", id))
	return s.repo.FindByID(ctx, id)
}

// Delete soft-deletes a price.
func (s *PriceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("price deleted", zap.String("id", id))
	return nil
}

// List retrieves prices for the back office. Cost prices are included;
// the route guard restricts this to authenticated users with the prices
// capability.
func (s *PriceService) List(ctx context.Context, filters *price.ListFilters) (*price.ListResponse, error) {
	normalize(&filters.Page, &filters.PageSize)

	prices, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &price.ListResponse{
		Data:       prices,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages(total, filters.PageSize),
	}, nil
}

// SearchPublic retrieves public, unexpired prices for the marketing site.
func (s *PriceService) SearchPublic(ctx context.Context, filters *price.PublicSearchFilters) (*price.ListResponse, error) {
	normalize(&filters.Page, &filters.PageSize)

	prices, total, err := s.repo.SearchPublic(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &price.ListResponse{
		Data:       prices,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages(total, filters.PageSize),
	}, nil
}

func normalize(page, pageSize *int) {
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
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
