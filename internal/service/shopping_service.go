package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/config"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/mealplan"
	"github.com/smartkitchen/inventory-api/internal/repository"
	"github.com/smartkitchen/inventory-api/internal/shopping"
)

// ShoppingService exposes the two shopping list derivations: the flat
// threshold list and the categorized list that folds in inventory
// overrides, today's meal plan and AI suggestions.
type ShoppingService struct {
	repo     repository.ConsumptionRepository
	composer *shopping.Composer
	planner  *mealplan.Planner
	cfg      config.ForecastConfig
}

func NewShoppingService(repo repository.ConsumptionRepository, composer *shopping.Composer, planner *mealplan.Planner, cfg config.ForecastConfig) *ShoppingService {
	return &ShoppingService{repo: repo, composer: composer, planner: planner, cfg: cfg}
}

// BasicList returns the soonest-depleting items under the basic threshold,
// flat and capped.
func (s *ShoppingService) BasicList(ctx context.Context) ([]domain.ShoppingListEntry, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return s.composer.ComposeBasic(ctx, events, s.cfg.BasicThresholdDays, s.cfg.BasicListLimit, time.Now())
}

// EnhancedList composes the categorized shopping list. Inventory is the
// caller's current-stock snapshot and may be empty. Meal plan ingredients
// come from today's plan when one exists; a planner failure degrades to a
// list without meal plan items rather than an error.
func (s *ShoppingService) EnhancedList(ctx context.Context, inventory []domain.InventoryItem) (*shopping.Result, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	var ingredients []string
	if s.planner != nil {
		ingredients, err = s.planner.TodaysIngredients(ctx, time.Now())
		if err != nil {
			log.Warn().Err(err).Msg("meal plan lookup failed, composing without it")
			ingredients = nil
		}
	}

	return s.composer.Compose(ctx, shopping.ComposeInput{
		Events:              events,
		Inventory:           inventory,
		ThresholdDays:       s.cfg.EnhancedThresholdDays,
		MealPlanIngredients: ingredients,
		Now:                 time.Now(),
	})
}
