// internal/service/businesstype/businesstype.go
package businesstype

import (
	"context"

	"cprice-service/internal/domain/businesstype"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BusinessTypeService struct {
	repo      *postgres.BusinessTypeRepository
	prices    *postgres.PriceRepository
	inquiries *postgres.InquiryRepository
	logger    *zap.Logger
}

func NewBusinessTypeService(
	repo *postgres.BusinessTypeRepository,
	prices *postgres.PriceRepository,
	inquiries *postgres.InquiryRepository,
	logger *zap.Logger,
) *BusinessTypeService {
	return &BusinessTypeService{
		repo:      repo,
		prices:    prices,
		inquiries: inquiries,
		logger:    logger,
	}
}

// Create adds a business type with a unique code.
func (s *BusinessTypeService) Create(ctx context.Context, req *businesstype.CreateRequest) (*businesstype.BusinessType, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "business type code already in use")
	}

	bt := &businesstype.BusinessType{
		ID:          ulid.Make().String(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, bt); err != nil {
		return nil, err
	}

	s.logger.Info("business type created", zap.String("id", bt.ID), zap.String("code", bt.Code))
	return bt, nil
}

// Get retrieves a business type by id.
func (s *BusinessTypeService) Get(ctx context.Context, id string) (*businesstype.BusinessType, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies partial changes; a code change re-checks uniqueness.
func (s *BusinessTypeService) Update(ctx context.Context, id string, req *businesstype.UpdateRequest) (*businesstype.BusinessType, error) {
	bt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != bt.Code {
		exists, err := s.repo.ExistsByCode(ctx, *req.Code, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, xerrors.Wrap(xerrors.ErrConflict, "business type code already in use")
		}
		bt.Code = *req.Code
	}
	if req.Name != nil {
		bt.Name = *req.Name
	}
	if req.Description != nil {
		bt.Description = req.Description
	}
	if req.IsActive != nil {
		bt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, bt); err != nil {
		return nil, err
	}

	s.logger.Info("business type updated", zap.String("id", id))
	return bt, nil
}

// Delete removes a business type unless prices or inquiries still
// reference it.
func (s *BusinessTypeService) Delete(ctx context.Context, id string) error {
	bt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	priceCount, err := s.prices.CountByBusinessType(ctx, id)
	if err != nil {
		return err
	}
	inquiryCount, err := s.inquiries.CountByBusinessType(ctx, bt.Code)
	if err != nil {
		return err
	}
	if priceCount > 0 || inquiryCount > 0 {
		return xerrors.Wrap(xerrors.ErrConflict, "business type is still referenced")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("business type deleted", zap.String("id", id))
	return nil
}

// Stats counts the records referencing a business type, for the delete
// confirmation dialog.
func (s *BusinessTypeService) Stats(ctx context.Context, id string) (*businesstype.Stats, error) {
	bt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priceCount, err := s.prices.CountByBusinessType(ctx, id)
	if err != nil {
		return nil, err
	}
	inquiryCount, err := s.inquiries.CountByBusinessType(ctx, bt.Code)
	if err != nil {
		return nil, err
	}

	return &businesstype.Stats{PriceCount: priceCount, InquiryCount: inquiryCount}, nil
}

// List retrieves business types with filters.
func (s *BusinessTypeService) List(ctx context.Context, filters *businesstype.ListFilters) (*businesstype.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	types, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &businesstype.ListResponse{
		Data:       types,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListActive retrieves active business types for public dropdowns.
func (s *BusinessTypeService) ListActive(ctx context.Context) ([]businesstype.BusinessType, error) {
	return s.repo.ListActive(ctx)
}
