package catalog

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount that encodes to JSON as a bare number
// ("price": 89.99) and stores as a decimal column.
type Money struct {
	decimal.Decimal
}

// MustMoney parses a literal amount; it panics on malformed input.
func MustMoney(s string) Money {
	return Money{decimal.RequireFromString(s)}
}

func MoneyFromInt(i int64) Money {
	return Money{decimal.NewFromInt(i)}
}

// Times returns m multiplied by a line quantity.
func (m Money) Times(qty int) Money {
	return Money{m.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) Plus(o Money) Money {
	return Money{m.Add(o.Decimal)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Value()
}

func (m *Money) Scan(value interface{}) error {
	return m.Decimal.Scan(value)
}
