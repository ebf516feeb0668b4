package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// ZeroMoney is the additive identity in the given currency.
func ZeroMoney(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

// Times returns the price of n units.
func (m Money) Times(n int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(n))),
		Currency: m.Currency,
	}
}

// Plus adds the amounts; the receiver's currency is kept.
func (m Money) Plus(o Money) Money {
	return Money{
		Amount:   m.Amount.Add(o.Amount),
		Currency: m.Currency,
	}
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount) && m.Currency == o.Currency
}
