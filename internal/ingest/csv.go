package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/smartkitchen/inventory-api/internal/domain"
)

// ParseConsumptionCSV reads a consumption log export. The header must carry
// item_name, date_consumed, quantity_used and remaining_stock columns, in
// any order. Dates use the YYYY-MM-DD layout. A malformed row fails the
// whole parse so a bad export never half-loads.
func ParseConsumptionCSV(r io.Reader) ([]domain.ConsumptionEvent, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(strings.ToLower(col))] = i
	}

	requiredCols := []string{"item_name", "date_consumed", "quantity_used", "remaining_stock"}
	for _, col := range requiredCols {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	getValue := func(record []string, colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var events []domain.ConsumptionEvent
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		name := getValue(record, "item_name")
		if name == "" {
			return nil, fmt.Errorf("line %d: empty item_name", line)
		}

		date, err := time.Parse(domain.DateLayout, getValue(record, "date_consumed"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad date_consumed: %w", line, err)
		}

		quantity, err := strconv.ParseFloat(getValue(record, "quantity_used"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad quantity_used: %w", line, err)
		}

		stock, err := strconv.ParseFloat(getValue(record, "remaining_stock"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad remaining_stock: %w", line, err)
		}

		events = append(events, domain.ConsumptionEvent{
			ItemName:       name,
			DateConsumed:   date,
			QuantityUsed:   quantity,
			RemainingStock: stock,
		})
	}

	return events, nil
}
