package model

// TransactionType indicates whether money came in or went out.
// Categories carry the same type and keep it for their whole lifetime.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// String returns the string representation of the type.
func (t TransactionType) String() string {
	return string(t)
}

// Category is a named, iconized grouping of transactions.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Type      TransactionType `json:"type"`
	IsDefault bool            `json:"isDefault,omitempty"`
}

// CategoryInput is a category before the store assigns it an id.
// User-created categories are never defaults.
type CategoryInput struct {
	Name string          `json:"name" validate:"required,notblank"`
	Icon string          `json:"icon" validate:"required,notblank"`
	Type TransactionType `json:"type" validate:"required,oneof=income expense"`
}

// Category materializes the input with the given id.
func (in CategoryInput) Category(id string) Category {
	return Category{
		ID:   id,
		Name: in.Name,
		Icon: in.Icon,
		Type: in.Type,
	}
}

// Seeded category ids.
const (
	IncomeFallbackID  = "inc-5"
	ExpenseFallbackID = "exp-7"
)

var defaultCategories = []Category{
	{ID: "inc-1", Name: "Ish haqi", Icon: "💼", Type: TypeIncome, IsDefault: true},
	{ID: "inc-2", Name: "Freelance", Icon: "💻", Type: TypeIncome, IsDefault: true},
	{ID: "inc-3", Name: "Savdo", Icon: "🏪", Type: TypeIncome, IsDefault: true},
	{ID: "inc-4", Name: "Sovg'a", Icon: "🎁", Type: TypeIncome, IsDefault: true},
	{ID: IncomeFallbackID, Name: "Boshqa", Icon: "💰", Type: TypeIncome, IsDefault: true},

	{ID: "exp-1", Name: "Ovqat", Icon: "🍕", Type: TypeExpense, IsDefault: true},
	{ID: "exp-2", Name: "Transport", Icon: "🚗", Type: TypeExpense, IsDefault: true},
	{ID: "exp-3", Name: "Internet", Icon: "📡", Type: TypeExpense, IsDefault: true},
	{ID: "exp-4", Name: "Uy", Icon: "🏠", Type: TypeExpense, IsDefault: true},
	{ID: "exp-5", Name: "Kiyim", Icon: "👔", Type: TypeExpense, IsDefault: true},
	{ID: "exp-6", Name: "Ko'ngilochar", Icon: "🎮", Type: TypeExpense, IsDefault: true},
	{ID: ExpenseFallbackID, Name: "Boshqa", Icon: "🛒", Type: TypeExpense, IsDefault: true},
}

// DefaultCategories returns a fresh copy of the seeded category set.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// FallbackCategoryID returns the catch-all ("Boshqa") seed for a type.
func FallbackCategoryID(t TransactionType) string {
	if t == TypeIncome {
		return IncomeFallbackID
	}
	return ExpenseFallbackID
}
