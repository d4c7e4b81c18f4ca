package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

type consumptionRepository struct {
	db *DB
}

func NewConsumptionRepository(db *DB) *consumptionRepository {
	return &consumptionRepository{db: db}
}

// ListEvents returns the full log ordered by date then insertion order, so
// same-day events keep a stable relative order.
func (r *consumptionRepository) ListEvents(ctx context.Context) ([]domain.ConsumptionEvent, error) {
	query := `
		SELECT id, item_name, date_consumed, quantity_used, remaining_stock
		FROM consumption_events
		ORDER BY date_consumed ASC, id ASC
	`

	events := []domain.ConsumptionEvent{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list consumption events: %w", err)
	}
	return events, nil
}

func (r *consumptionRepository) ListEventsByItem(ctx context.Context, itemName string) ([]domain.ConsumptionEvent, error) {
	query := `
		SELECT id, item_name, date_consumed, quantity_used, remaining_stock
		FROM consumption_events
		WHERE LOWER(item_name) = LOWER($1)
		ORDER BY date_consumed ASC, id ASC
	`

	events := []domain.ConsumptionEvent{}
	if err := r.db.SelectContext(ctx, &events, query, itemName); err != nil {
		return nil, fmt.Errorf("failed to list events for %q: %w", itemName, err)
	}
	return events, nil
}

func (r *consumptionRepository) AppendEvent(ctx context.Context, event *domain.ConsumptionEvent) error {
	if event.DateConsumed.IsZero() {
		event.DateConsumed = time.Now()
	}

	query := `
		INSERT INTO consumption_events (item_name, date_consumed, quantity_used, remaining_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		event.ItemName,
		event.DateConsumed,
		event.QuantityUsed,
		event.RemainingStock,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to append consumption event: %w", err)
	}
	return nil
}

// AppendEvents inserts a batch of events in one transaction, so a partially
// bad import never half-loads.
func (r *consumptionRepository) AppendEvents(ctx context.Context, events []domain.ConsumptionEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO consumption_events (item_name, date_consumed, quantity_used, remaining_stock)
		VALUES ($1, $2, $3, $4)
	`

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i := range events {
			if events[i].DateConsumed.IsZero() {
				events[i].DateConsumed = time.Now()
			}
			_, err := tx.ExecContext(ctx, query,
				events[i].ItemName,
				events[i].DateConsumed,
				events[i].QuantityUsed,
				events[i].RemainingStock,
			)
			if err != nil {
				return fmt.Errorf("failed to append event %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (r *consumptionRepository) ListItems(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT item_name
		FROM consumption_events
		ORDER BY item_name ASC
	`

	items := []string{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}
