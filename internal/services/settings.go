package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/autoparts/internal/models"
	"github.com/diewo77/autoparts/internal/store"
)

// SettingsService reads and writes the settings singleton.
type SettingsService struct {
	store store.Store
}

func NewSettingsService(st store.Store) *SettingsService {
	return &SettingsService{store: st}
}

// Get returns the stored settings, creating the defaults on first access.
func (s *SettingsService) Get(ctx context.Context) (models.AppSettings, error) {
	settings, err := s.store.Settings().Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		settings, err = s.store.Settings().Put(ctx, models.DefaultSettings())
	}
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) Save(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	return s.store.Settings().Put(ctx, settings)
}
