package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"

	"expense-tracker/internal/domain"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no expense data to chart")

// RenderPie renders a category breakdown as a PNG pie chart. Slice order
// follows the given totals so output stays deterministic.
func RenderPie(totals []domain.CategoryTotal) ([]byte, error) {
	values := make([]gochart.Value, 0, len(totals))
	for _, ct := range totals {
		if ct.Total <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.2f)", ct.Category, ct.Total),
			Value: ct.Total,
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := gochart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}
