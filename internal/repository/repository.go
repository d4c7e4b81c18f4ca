package repository

import (
	"context"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// ConsumptionRepository is the boundary to the append-only consumption log.
// Reads return the full ordered log (or a per-item slice); an empty log is an
// empty slice, never an error. Appends accept duplicates as distinct events.
type ConsumptionRepository interface {
	ListEvents(ctx context.Context) ([]domain.ConsumptionEvent, error)
	ListEventsByItem(ctx context.Context, itemName string) ([]domain.ConsumptionEvent, error)
	AppendEvent(ctx context.Context, event *domain.ConsumptionEvent) error
	AppendEvents(ctx context.Context, events []domain.ConsumptionEvent) error
	ListItems(ctx context.Context) ([]string, error)
}

// MealPlanRepository stores generated meal plans.
type MealPlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.MealPlan) error
	ListPlans(ctx context.Context) ([]domain.MealPlan, error)
	LatestPlan(ctx context.Context) (*domain.MealPlan, error)
}
