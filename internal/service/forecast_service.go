package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/cache"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/forecast"
	"github.com/smartkitchen/inventory-api/internal/repository"
)

// ForecastService turns the consumption log into depletion forecasts,
// with a read-through profile cache in front of the estimator.
type ForecastService struct {
	repo  repository.ConsumptionRepository
	cache cache.ProfileCache
}

func NewForecastService(repo repository.ConsumptionRepository, cacheImpl cache.ProfileCache) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopProfileCache()
	}
	return &ForecastService{repo: repo, cache: cacheImpl}
}

// Predict forecasts when itemName runs out.
func (s *ForecastService) Predict(ctx context.Context, itemName string) (*domain.ItemUsageProfile, error) {
	if profile, ok, err := s.cache.GetProfile(ctx, itemName); err != nil {
		log.Warn().Err(err).Str("item", itemName).Msg("profile cache read failed")
	} else if ok {
		return profile, nil
	}

	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := forecast.Predict(itemName, events, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProfile(ctx, itemName, profile); err != nil {
		log.Warn().Err(err).Str("item", itemName).Msg("profile cache write failed")
	}
	return profile, nil
}

// NextEmpty finds the tracked item that depletes soonest.
func (s *ForecastService) NextEmpty(ctx context.Context) (*domain.ItemUsageProfile, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return forecast.RankSoonest(events, time.Now())
}
