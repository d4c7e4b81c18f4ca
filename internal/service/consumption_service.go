package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/cache"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/repository"
)

// ConsumptionService owns reads and appends on the consumption log.
type ConsumptionService struct {
	repo  repository.ConsumptionRepository
	cache cache.ProfileCache
}

func NewConsumptionService(repo repository.ConsumptionRepository, cacheImpl cache.ProfileCache) *ConsumptionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopProfileCache()
	}
	return &ConsumptionService{repo: repo, cache: cacheImpl}
}

// Log appends one consumption event. An unset date defaults to now. The
// cached profile for the item is invalidated so the next forecast sees the
// new event.
func (s *ConsumptionService) Log(ctx context.Context, event *domain.ConsumptionEvent) error {
	if event.DateConsumed.IsZero() {
		event.DateConsumed = time.Now()
	}

	if err := s.repo.AppendEvent(ctx, event); err != nil {
		return err
	}

	if err := s.cache.InvalidateItem(ctx, event.ItemName); err != nil {
		log.Warn().Err(err).Str("item", event.ItemName).Msg("profile cache invalidation failed")
	}
	return nil
}

// Events returns a snapshot of the full log.
func (s *ConsumptionService) Events(ctx context.Context) ([]domain.ConsumptionEvent, error) {
	return s.repo.ListEvents(ctx)
}

// History returns one item's events, oldest first.
func (s *ConsumptionService) History(ctx context.Context, itemName string) ([]domain.ConsumptionEvent, error) {
	events, err := s.repo.ListEventsByItem(ctx, itemName)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrItemNotFound
	}
	return events, nil
}

// Items returns the distinct tracked item names.
func (s *ConsumptionService) Items(ctx context.Context) ([]string, error) {
	return s.repo.ListItems(ctx)
}
