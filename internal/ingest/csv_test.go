package ingest

import (
	"strings"
	"testing"

	"github.com/smartkitchen/inventory-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseConsumptionCSV(t *testing.T) {
	t.Run("well formed export", func(t *testing.T) {
		input := strings.Join([]string{
			"item_name,date_consumed,quantity_used,remaining_stock",
			"Milk,2025-03-01,1,5",
			"Eggs,2025-03-02,6,12",
		}, "\n")

		events, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.NoError(t, err)
		assert.Len(t, events, 2)

		assert.Equal(t, "Milk", events[0].ItemName)
		assert.Equal(t, "2025-03-01", events[0].DateConsumed.Format(domain.DateLayout))
		assert.Equal(t, 1.0, events[0].QuantityUsed)
		assert.Equal(t, 5.0, events[0].RemainingStock)
	})

	t.Run("columns in any order", func(t *testing.T) {
		input := strings.Join([]string{
			"remaining_stock,item_name,quantity_used,date_consumed",
			"5,Milk,1,2025-03-01",
		}, "\n")

		events, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Milk", events[0].ItemName)
		assert.Equal(t, 5.0, events[0].RemainingStock)
	})

	t.Run("missing column", func(t *testing.T) {
		input := "item_name,date_consumed,quantity_used\nMilk,2025-03-01,1"
		_, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.ErrorContains(t, err, "remaining_stock")
	})

	t.Run("bad date fails the parse", func(t *testing.T) {
		input := strings.Join([]string{
			"item_name,date_consumed,quantity_used,remaining_stock",
			"Milk,2025-03-01,1,5",
			"Milk,03/05/2025,1,4",
		}, "\n")

		_, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.ErrorContains(t, err, "date_consumed")
	})

	t.Run("bad number fails the parse", func(t *testing.T) {
		input := strings.Join([]string{
			"item_name,date_consumed,quantity_used,remaining_stock",
			"Milk,2025-03-01,one,5",
		}, "\n")

		_, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.ErrorContains(t, err, "quantity_used")
	})

	t.Run("empty item name fails the parse", func(t *testing.T) {
		input := strings.Join([]string{
			"item_name,date_consumed,quantity_used,remaining_stock",
			",2025-03-01,1,5",
		}, "\n")

		_, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.ErrorContains(t, err, "item_name")
	})

	t.Run("header only", func(t *testing.T) {
		input := "item_name,date_consumed,quantity_used,remaining_stock\n"
		events, err := ParseConsumptionCSV(strings.NewReader(input))
		assert.NoError(t, err)
		assert.Empty(t, events)
	})
}
