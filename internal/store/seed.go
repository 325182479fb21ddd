package store

import (
	"context"

	"github.com/helderruiz/controle-mensal/internal/core"
)

// Seed returns the fixed starter set used when no snapshot exists yet.
func Seed() []core.Transaction {
	return []core.Transaction{
		{
			ID:          "1",
			Description: "Palheta / Sup.GPS",
			Amount:      core.Money{Cents: 3690},
			Date:        core.NewDate(2024, 2, 16),
			Type:        core.Exit,
			Category:    core.Transport,
		},
		{
			ID:          "2",
			Description: "Prest. Casa",
			Amount:      core.Money{Cents: 80000},
			Date:        core.NewDate(2024, 2, 12),
			Type:        core.Exit,
			Category:    core.Rent,
		},
		{
			ID:          "3",
			Description: "Salário",
			Amount:      core.Money{Cents: 484770},
			Date:        core.NewDate(2025, 5, 5),
			Type:        core.Entry,
			Category:    core.Salary,
		},
		{
			ID:          "4",
			Description: "iFood - Restaurante",
			Amount:      core.Money{Cents: 4290},
			Date:        core.NewDate(2025, 5, 20),
			Type:        core.Exit,
			Category:    core.Food,
		},
	}
}

// NullSnapshotter keeps the transaction set only in process memory. It is
// the memory-backend counterpart of the SQLite snapshot repository.
type NullSnapshotter struct{}

func (NullSnapshotter) Save(context.Context, []core.Transaction) error { return nil }

func (NullSnapshotter) Load(context.Context) ([]core.Transaction, bool, error) {
	return nil, false, nil
}
