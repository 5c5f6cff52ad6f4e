package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CreditScale is the number of decimal places a Credit carries.
const CreditScale = 6

// CreditPerTree is the fixed-point value of one whole tree.
const CreditPerTree Credit = 1_000_000

// Credit is an amount of tree credit stored as fixed-point millionths of a tree.
type Credit int64

func TreesToCredit(trees int64) Credit {
	return Credit(trees) * CreditPerTree
}

// CreditFromDecimal converts d into a Credit, failing when d has more
// precision than CreditScale allows.
func CreditFromDecimal(d decimal.Decimal) (Credit, error) {
	shifted := d.Shift(CreditScale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("credit %s exceeds %d decimal places", d, CreditScale)
	}
	return Credit(shifted.IntPart()), nil
}

func ParseCredit(s string) (Credit, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid credit %q: %w", s, err)
	}
	return CreditFromDecimal(d)
}

func (c Credit) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -CreditScale)
}

func (c Credit) String() string {
	return c.Decimal().String()
}

func (c Credit) IsZero() bool {
	return c == 0
}

func (c Credit) MarshalJSON() ([]byte, error) {
	return c.Decimal().MarshalJSON()
}

func (c *Credit) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := CreditFromDecimal(d)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
