package models

// Category groups transactions for the dashboard and reports.
type Category struct {
	ID     string
	UserID string
	Name   string

	// Type is TypeIncome or TypeExpense.
	Type string

	// Description helps the AI provider classify transactions.
	Description string

	// Color is a hex string for chart rendering.
	Color string

	CreatedAt int64
}

// DefaultCategories are seeded for every new profile.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Salary", Type: TypeIncome, Description: "Wages and paychecks", Color: "#16a34a"},
		{Name: "Other Income", Type: TypeIncome, Description: "Gifts, refunds, side income", Color: "#22c55e"},
		{Name: "Groceries", Type: TypeExpense, Description: "Supermarket and food shopping", Color: "#f97316"},
		{Name: "Dining", Type: TypeExpense, Description: "Restaurants, cafes, takeout", Color: "#fb923c"},
		{Name: "Housing", Type: TypeExpense, Description: "Rent, mortgage, utilities", Color: "#2563eb"},
		{Name: "Transport", Type: TypeExpense, Description: "Fuel, transit, rideshare, parking", Color: "#0ea5e9"},
		{Name: "Health", Type: TypeExpense, Description: "Pharmacy, doctor, insurance", Color: "#dc2626"},
		{Name: "Education", Type: TypeExpense, Description: "School fees, books, courses", Color: "#7c3aed"},
		{Name: "Entertainment", Type: TypeExpense, Description: "Streaming, games, outings", Color: "#db2777"},
		{Name: "Other", Type: TypeExpense, Description: "Anything else", Color: "#6b7280"},
	}
}
