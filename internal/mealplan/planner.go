// Package mealplan generates daily meal plans with an LLM, constrained by
// dietary preferences and the current inventory. The model's output is
// treated as untrusted: responses are coerced into the plan structure and
// rejected, not patched, when they cannot be.
package mealplan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/smartkitchen/inventory-api/internal/repository"
	"github.com/smartkitchen/inventory-api/internal/storage"
	"github.com/tmc/langchaingo/llms"
)

// Planner generates and stores meal plans. The archive is optional; a nil
// archive disables mirroring and a failed archive write never fails the plan.
type Planner struct {
	model   llms.Model
	repo    repository.MealPlanRepository
	archive storage.ObjectStorage
	timeout time.Duration
}

func NewPlanner(model llms.Model, repo repository.MealPlanRepository, archive storage.ObjectStorage, timeout time.Duration) *Planner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Planner{model: model, repo: repo, archive: archive, timeout: timeout}
}

// Generate produces a plan for today, saves it, and mirrors it to the
// archive when one is configured.
func (p *Planner) Generate(ctx context.Context, req domain.MealPlanRequest) (*domain.MealPlan, error) {
	if p.model == nil {
		return nil, fmt.Errorf("meal planning model is not configured")
	}

	date := time.Now().Format(domain.DateLayout)

	recentNames, err := p.recentRecipeNames(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not load previous meal plans, continuing without repetition guard")
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.model.GenerateContent(callCtx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, plannerSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, buildPrompt(req, date, recentNames)),
	}, llms.WithMaxTokens(2048))
	if err != nil {
		return nil, fmt.Errorf("meal plan generation failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from meal planning model")
	}

	plan, err := ParsePlanResponse(resp.Choices[0].Content, date)
	if err != nil {
		return nil, err
	}

	if p.repo != nil {
		if err := p.repo.SavePlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to save meal plan: %w", err)
		}
	}
	p.archivePlan(ctx, plan)

	return plan, nil
}

// Latest returns the most recently generated plan, or nil when none exist.
func (p *Planner) Latest(ctx context.Context) (*domain.MealPlan, error) {
	if p.repo == nil {
		return nil, nil
	}
	return p.repo.LatestPlan(ctx)
}

// List returns all stored plans, oldest first.
func (p *Planner) List(ctx context.Context) ([]domain.MealPlan, error) {
	if p.repo == nil {
		return nil, nil
	}
	return p.repo.ListPlans(ctx)
}

// TodaysIngredients returns the ingredient strings of the latest plan if it
// is dated today, otherwise nil. The enhanced shopping list only folds in a
// plan that is actually current.
func (p *Planner) TodaysIngredients(ctx context.Context, now time.Time) ([]string, error) {
	latest, err := p.Latest(ctx)
	if err != nil || latest == nil {
		return nil, err
	}
	if latest.Date != now.Format(domain.DateLayout) {
		return nil, nil
	}
	return latest.Ingredients(), nil
}

func (p *Planner) recentRecipeNames(ctx context.Context) ([]string, error) {
	plans, err := p.List(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	start := 0
	if len(plans) > 3 {
		start = len(plans) - 3
	}
	for _, plan := range plans[start:] {
		for _, meal := range []domain.RecipeDetails{plan.Breakfast, plan.Lunch, plan.Dinner} {
			if meal.Name != "" {
				names = append(names, meal.Name)
			}
		}
	}
	return names, nil
}

func (p *Planner) archivePlan(ctx context.Context, plan *domain.MealPlan) {
	if p.archive == nil {
		return
	}
	key := fmt.Sprintf("meal_plans/%s.json", plan.Date)
	if err := storage.PutJSON(ctx, p.archive, key, plan); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("meal plan archive write failed")
	}
}

const plannerSystemPrompt = `You are a meal planning assistant for a household kitchen.
Create a full day's meal plan with breakfast, lunch, and dinner that prioritizes
ingredients expiring soon, respects the dietary preferences, and stays near the
calorie target. Respond with a single JSON object with keys: breakfast, lunch,
dinner, suggested_recipes. Each recipe has: name, ingredients (array of plain
strings like "2 cups rice"), instructions (array of strings), dietary_tags,
prep_time, calories. Do not wrap the JSON in markdown.`

func buildPrompt(req domain.MealPlanRequest, date string, recentNames []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a meal plan for %s.\n", date)
	if req.DietaryPreferences.PreferenceType != "" {
		fmt.Fprintf(&b, "Diet: %s\n", req.DietaryPreferences.PreferenceType)
	}
	if len(req.DietaryPreferences.AvoidIngredients) > 0 {
		fmt.Fprintf(&b, "Avoid ingredients: %s\n", strings.Join(req.DietaryPreferences.AvoidIngredients, ", "))
	}
	if len(req.DietaryPreferences.PreferredIngredients) > 0 {
		fmt.Fprintf(&b, "Preferred ingredients: %s\n", strings.Join(req.DietaryPreferences.PreferredIngredients, ", "))
	}
	if req.DietaryPreferences.CalorieTarget > 0 {
		fmt.Fprintf(&b, "Daily calorie target: %d\n", req.DietaryPreferences.CalorieTarget)
	}

	if len(req.Inventory) > 0 {
		b.WriteString("Available inventory:\n")
		for _, item := range req.Inventory {
			fmt.Fprintf(&b, "- %s: %g %s", item.ItemName, item.Quantity, item.Unit)
			if item.ExpiryDate != "" {
				fmt.Fprintf(&b, " (expires %s)", item.ExpiryDate)
			}
			b.WriteString("\n")
		}
	}

	if len(recentNames) > 0 {
		fmt.Fprintf(&b, "Avoid repeating these recent recipes: %s\n", strings.Join(recentNames, ", "))
	}

	b.WriteString("Also suggest 2-3 alternative recipe ideas based on the available ingredients.")
	return b.String()
}
