package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

type mealPlanRepository struct {
	db *DB
}

func NewMealPlanRepository(db *DB) *mealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) SavePlan(ctx context.Context, plan *domain.MealPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode meal plan: %w", err)
	}

	planDate, err := time.Parse(domain.DateLayout, plan.Date)
	if err != nil {
		return fmt.Errorf("invalid meal plan date %q: %w", plan.Date, err)
	}

	query := `
		INSERT INTO meal_plans (plan_date, payload)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, planDate, payload).Scan(&plan.ID); err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

func (r *mealPlanRepository) ListPlans(ctx context.Context) ([]domain.MealPlan, error) {
	query := `
		SELECT id, payload
		FROM meal_plans
		ORDER BY plan_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.MealPlan
	for rows.Next() {
		var id int64
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}

		var plan domain.MealPlan
		if err := json.Unmarshal(payload, &plan); err != nil {
			return nil, fmt.Errorf("failed to decode meal plan %d: %w", id, err)
		}
		plan.ID = id
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *mealPlanRepository) LatestPlan(ctx context.Context) (*domain.MealPlan, error) {
	query := `
		SELECT id, payload
		FROM meal_plans
		ORDER BY plan_date DESC, id DESC
		LIMIT 1
	`

	var id int64
	var payload []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&id, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest meal plan: %w", err)
	}

	var plan domain.MealPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan %d: %w", id, err)
	}
	plan.ID = id
	return &plan, nil
}
