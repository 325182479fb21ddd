package core

import "fmt"

// Draft is a user-authored transaction before ids are assigned. Amount is
// the value of a single installment, not the series total.
type Draft struct {
	Description string
	Amount      Money
	Date        Date
	Type        Type
	Category    Category
	Repetition  Repetition
	Installment InstallmentType
	// Count is the number of installments; 1 for a standalone record.
	Count int
}

func (d Draft) Validate() error {
	if d.Count < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidInstallments, d.Count)
	}
	if d.Count > 1 && d.Installment == Fixed {
		return fmt.Errorf("%w: a FIXED record cannot form a series", ErrInvalidInstallments)
	}
	t := Transaction{
		Description: d.Description,
		Amount:      d.Amount,
		Date:        d.Date,
		Type:        d.Type,
		Category:    d.Category,
	}
	return t.Validate()
}

// Expand materializes the draft into Count transaction records, one per
// calendar month starting at the draft date, day-of-month clamped to each
// destination month. When Count > 1 every record carries the series count
// and a " (k/count)" description marker, the only link between siblings.
// The whole batch is produced up front so the store can insert it as one
// operation; a rejected draft produces no records at all.
func (d Draft) Expand() ([]Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// A multi-record draft is an installment series by definition; only a
	// standalone record defaults to FIXED.
	installment := d.Installment
	if installment == "" {
		installment = Fixed
		if d.Count > 1 {
			installment = Installment
		}
	}
	repetition := d.Repetition
	if repetition == "" {
		repetition = RepeatNone
	}

	out := make([]Transaction, 0, d.Count)
	for i := 0; i < d.Count; i++ {
		desc := d.Description
		count := 0
		if d.Count > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", d.Description, i+1, d.Count)
			count = d.Count
		}
		out = append(out, Transaction{
			Description:       desc,
			Amount:            d.Amount,
			Date:              d.Date.AddMonths(i),
			Type:              d.Type,
			Category:          d.Category,
			Repetition:        repetition,
			Installment:       installment,
			InstallmentsCount: count,
		})
	}
	return out, nil
}
