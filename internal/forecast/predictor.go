package forecast

import (
	"strings"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// Predict answers "when will this item run out?" for a single named item.
// It is a pure read over the supplied log snapshot: the log is filtered to
// the named item (case-insensitive) and handed to the estimator.
//
// ErrItemNotFound, ErrInsufficientData and ErrInvalidData are distinct result
// kinds so callers can render "no such item" and "not enough history"
// differently from "cannot predict".
func Predict(itemName string, log []domain.ConsumptionEvent, now time.Time) (*domain.ItemUsageProfile, error) {
	var events []domain.ConsumptionEvent
	for _, ev := range log {
		if strings.EqualFold(ev.ItemName, itemName) {
			events = append(events, ev)
		}
	}

	if len(events) == 0 {
		return nil, domain.ErrItemNotFound
	}

	profile, err := Estimate(events, now)
	if err != nil {
		return nil, err
	}
	profile.ItemName = itemName
	return profile, nil
}
