package domain

import "time"

// DateLayout is the wire format for expense dates.
const DateLayout = "2006-01-02"

// Expense represents a single spending record owned by a user.
type Expense struct {
	ID        int64
	UserID    int64
	Category  string
	Amount    float64
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryTotal is the summed amount for one expense category.
type CategoryTotal struct {
	Category string
	Total    float64
}
