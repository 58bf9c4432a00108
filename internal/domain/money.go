package domain

import "github.com/shopspring/decimal"

// nanosPerUnit — количество nanos в одной целой единице валюты.
const nanosPerUnit = 1_000_000_000

// Money — денежная сумма в формате units/nanos/currency (без плавающей точки).
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Units        int64  `json:"units"`
	Nanos        int32  `json:"nanos"`
}

// Amount — сумма в десятичном виде: units + nanos / 1e9.
func (m Money) Amount() decimal.Decimal {
	return decimal.NewFromInt(m.Units).Add(decimal.New(int64(m.Nanos), -9))
}

// MoneyFromAmount — обратное преобразование (используется тестами и CLI).
// Дробная часть за пределами 9 знаков отбрасывается.
func MoneyFromAmount(currency string, amount decimal.Decimal) Money {
	units := amount.Truncate(0)
	nanos := amount.Sub(units).Mul(decimal.NewFromInt(nanosPerUnit)).Truncate(0)
	return Money{
		CurrencyCode: currency,
		Units:        units.IntPart(),
		Nanos:        int32(nanos.IntPart()),
	}
}
