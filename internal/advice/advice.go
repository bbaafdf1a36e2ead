package advice

import (
	"context"
	"fmt"
	"strings"
)

// ExpenseItem is one category/amount pair supplied by the caller.
type ExpenseItem struct {
	Category string
	Amount   float64
}

// Generator produces savings advice for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt renders the expense list into the fixed advice prompt.
func BuildPrompt(items []ExpenseItem) string {
	var b strings.Builder
	b.WriteString("Here are my monthly expenses: ")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.2f", item.Category, item.Amount)
	}
	b.WriteString(". Please suggest how I can improve my savings.")
	return b.String()
}
