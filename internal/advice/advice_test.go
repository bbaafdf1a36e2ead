package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]ExpenseItem{
		{Category: "food", Amount: 20},
		{Category: "rent", Amount: 500.5},
	})

	assert.Equal(t,
		"Here are my monthly expenses: food: 20.00, rent: 500.50. Please suggest how I can improve my savings.",
		prompt,
	)
}

func TestBuildPromptEmptyList(t *testing.T) {
	prompt := BuildPrompt(nil)

	assert.Equal(t,
		"Here are my monthly expenses: . Please suggest how I can improve my savings.",
		prompt,
	)
}
