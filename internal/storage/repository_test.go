package storage

import (
	"encoding/json"
	"testing"

	"github.com/helderruiz/controle-mensal/internal/core"
)

// The snapshot payload is plain JSON; the codec must round-trip every
// field the store persists, including installment metadata.
func TestSnapshotCodecRoundTrip(t *testing.T) {
	in := []core.Transaction{
		{
			ID:          "a",
			Description: "Salário",
			Amount:      core.Money{Cents: 484770},
			Date:        core.NewDate(2025, 5, 5),
			Type:        core.Entry,
			Category:    core.Salary,
		},
		{
			ID:                "b",
			Description:       "Notebook (1/4)",
			Amount:            core.Money{Cents: 30000},
			Date:              core.NewDate(2024, 1, 15),
			Type:              core.Exit,
			Category:          core.Shopping,
			Repetition:        core.RepeatNone,
			Installment:       core.Installment,
			InstallmentsCount: 4,
		},
	}

	payload, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out []core.Transaction
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length: %d vs %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestSnapshotCodecEmptySet(t *testing.T) {
	payload, err := json.Marshal([]core.Transaction{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out []core.Transaction
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty set, got %d", len(out))
	}
}
