package service

import (
	"context"
	"strings"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/ingredient"
	"github.com/smartkitchen/inventory-api/internal/mealplan"
	"github.com/smartkitchen/inventory-api/internal/recommend"
)

// maxMissingRecommendations caps recommendation calls in the smart planner.
const maxMissingRecommendations = 5

// ShoppingSuggestions pairs the smart planner's missing ingredients with
// per-ingredient product recommendations.
type ShoppingSuggestions struct {
	MissingIngredients []string            `json:"missing_ingredients"`
	Recommendations    map[string][]string `json:"recommendations"`
}

// SmartPlanResult is a generated plan plus shopping help for the
// ingredients the caller's inventory cannot cover.
type SmartPlanResult struct {
	MealPlan            *domain.MealPlan    `json:"meal_plan"`
	ShoppingSuggestions ShoppingSuggestions `json:"shopping_suggestions"`
}

// MealPlanService fronts plan generation and the combined smart planner.
type MealPlanService struct {
	planner     *mealplan.Planner
	recommender recommend.Recommender
	maxParallel int
}

func NewMealPlanService(planner *mealplan.Planner, rec recommend.Recommender, maxParallel int) *MealPlanService {
	if rec == nil {
		rec = recommend.NoopRecommender{}
	}
	return &MealPlanService{planner: planner, recommender: rec, maxParallel: maxParallel}
}

// Generate produces and persists a plan for today.
func (s *MealPlanService) Generate(ctx context.Context, req domain.MealPlanRequest) (*domain.MealPlan, error) {
	return s.planner.Generate(ctx, req)
}

// List returns all stored plans, oldest first.
func (s *MealPlanService) List(ctx context.Context) ([]domain.MealPlan, error) {
	return s.planner.List(ctx)
}

// SmartPlan generates a plan, derives the ingredients the request inventory
// does not cover and fetches product recommendations for the first few of
// them. Recommendation failures leave an empty list for that ingredient.
func (s *MealPlanService) SmartPlan(ctx context.Context, req domain.MealPlanRequest) (*SmartPlanResult, error) {
	plan, err := s.planner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	missing := missingIngredients(plan, req.Inventory)

	toRecommend := missing
	if len(toRecommend) > maxMissingRecommendations {
		toRecommend = toRecommend[:maxMissingRecommendations]
	}
	recommendations := recommend.SuggestAll(ctx, s.recommender, toRecommend, s.maxParallel)

	return &SmartPlanResult{
		MealPlan: plan,
		ShoppingSuggestions: ShoppingSuggestions{
			MissingIngredients: missing,
			Recommendations:    recommendations,
		},
	}, nil
}

// missingIngredients normalizes the plan's ingredient strings and drops the
// ones fuzzy-covered by the inventory. Output order follows first appearance
// in the plan.
func missingIngredients(plan *domain.MealPlan, inventory []domain.InventoryItem) []string {
	available := make([]string, 0, len(inventory))
	for _, item := range inventory {
		available = append(available, strings.ToLower(item.ItemName))
	}

	seen := make(map[string]struct{})
	missing := []string{}
	for _, raw := range plan.Ingredients() {
		name := ingredient.Normalize(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if ingredient.MatchesAny(name, available) {
			continue
		}
		missing = append(missing, name)
	}
	return missing
}
