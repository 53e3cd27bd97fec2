// internal/service/setting/setting.go
package setting

import (
	"context"

	"cprice-service/internal/domain/setting"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type SettingService struct {
	repo   *postgres.SettingRepository
	logger *zap.Logger
}

func NewSettingService(repo *postgres.SettingRepository, logger *zap.Logger) *SettingService {
	return &SettingService{repo: repo, logger: logger}
}

// GetAll returns the full settings map with defaults filled in for keys
// never written.
func (s *SettingService) GetAll(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	for k, v := range setting.Defaults {
		values[k] = v
	}
	for k, v := range stored {
		values[k] = v
	}
	return values, nil
}

// GetPublic returns only the whitelisted keys, for the marketing site.
func (s *SettingService) GetPublic(ctx context.Context) (map[string]string, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	for _, k := range setting.PublicKeys {
		if v, ok := all[k]; ok {
			values[k] = v
		}
	}
	return values, nil
}

// Update writes a batch of settings. Unknown keys are rejected so typos do
// not silently accumulate.
func (s *SettingService) Update(ctx context.Context, req *setting.UpdateRequest) (map[string]string, error) {
	for k := range req.Settings {
		if _, ok := setting.Defaults[k]; !ok {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown setting key: "+k)
		}
	}

	if err := s.repo.UpsertMany(ctx, req.Settings); err != nil {
		return nil, err
	}

	s.logger.Info("settings updated", zap.Int("count", len(req.Settings)))
	return s.GetAll(ctx)
}

// Reset restores every setting to its default value.
func (s *SettingService) Reset(ctx context.Context) (map[string]string, error) {
	if err := s.repo.UpsertMany(ctx, setting.Defaults); err != nil {
		return nil, err
	}

	s.logger.Info("settings reset to defaults")
	return s.GetAll(ctx)
}
