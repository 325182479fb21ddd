package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Type tells inflow from outflow. It decides the sign of a
	// transaction's contribution to a balance.
	Type string

	// Category is the closed set of spending/income categories.
	Category string

	// Repetition is advisory metadata recorded on a transaction; it does
	// not regenerate future entries.
	Repetition string

	// InstallmentType marks whether a transaction was entered on its own
	// or generated as part of an installment series.
	InstallmentType string
)

const (
	Entry Type = "ENTRY"
	Exit  Type = "EXIT"
)

const (
	Salary        Category = "SALARY"
	Rent          Category = "RENT"
	Food          Category = "FOOD"
	Transport     Category = "TRANSPORT"
	Entertainment Category = "ENTERTAINMENT"
	Shopping      Category = "SHOPPING"
	Bills         Category = "BILLS"
	Others        Category = "OTHERS"
)

const (
	RepeatNone    Repetition = "NONE"
	RepeatMonthly Repetition = "MONTHLY"
)

const (
	Fixed       InstallmentType = "FIXED"
	Installment InstallmentType = "INSTALLMENT"
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidInstallments = errors.New("invalid installment count")
)

// Categories lists every category in display order.
var Categories = []Category{
	Salary, Rent, Food, Transport, Entertainment, Shopping, Bills, Others,
}

// CategoryMeta carries the display metadata of a category. Every category
// has a total, defined mapping; unknown values fall back to the metadata
// of Others.
type CategoryMeta struct {
	Label string
	Icon  string
	Color string
}

var categoryMeta = map[Category]CategoryMeta{
	Salary:        {Label: "Salário", Icon: "payments", Color: "emerald"},
	Rent:          {Label: "Aluguel", Icon: "home", Color: "blue"},
	Food:          {Label: "Alimentação", Icon: "restaurant", Color: "orange"},
	Transport:     {Label: "Transporte", Icon: "directions_car", Color: "cyan"},
	Entertainment: {Label: "Lazer", Icon: "celebration", Color: "pink"},
	Shopping:      {Label: "Compras", Icon: "shopping_bag", Color: "purple"},
	Bills:         {Label: "Contas", Icon: "bolt", Color: "yellow"},
	Others:        {Label: "Outros", Icon: "category", Color: "slate"},
}

// Meta returns the display metadata for the category, falling back to the
// Others metadata for values outside the closed set.
func (c Category) Meta() CategoryMeta {
	if m, ok := categoryMeta[c]; ok {
		return m
	}
	return categoryMeta[Others]
}

// Label returns the Portuguese display label of the category.
func (c Category) Label() string { return c.Meta().Label }

func (c Category) IsValid() bool {
	_, ok := categoryMeta[c]
	return ok
}

// Label returns the Portuguese display label of the type.
func (t Type) Label() string {
	if t == Entry {
		return "ENTRADA"
	}
	return "SAÍDA"
}

func (t Type) IsValid() bool {
	return t == Entry || t == Exit
}

// Transaction is a single ledger record. It is immutable once created and
// replaced wholesale on edit.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Money           `json:"amountCents"`
	Date        Date            `json:"date"`
	Type        Type            `json:"type"`
	Category    Category        `json:"category"`
	Repetition  Repetition      `json:"repetition,omitempty"`
	Installment InstallmentType `json:"installmentType,omitempty"`
	// InstallmentsCount is the total size of the installment series this
	// record belongs to; zero for standalone records.
	InstallmentsCount int `json:"installmentsCount,omitempty"`
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	return nil
}
