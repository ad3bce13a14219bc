package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency symbols offered by the shopping and expense tabs.
const (
	CurrencyTHB = "฿"
	CurrencyTWD = "NT$"
	CurrencyUSD = "$"
	CurrencyKRW = "₩"
	CurrencyJPY = "¥"
	CurrencyEUR = "€"
	CurrencyGBP = "£"
)

// DefaultCurrency is assumed for entries stored without a currency.
const DefaultCurrency = CurrencyTHB

// MaxAmount is the largest amount or price accepted from a client.
const MaxAmount Amount = 1e15

// Currencies lists the supported symbols in display order.
var Currencies = []string{
	CurrencyTHB, CurrencyTWD, CurrencyUSD, CurrencyKRW, CurrencyJPY, CurrencyEUR, CurrencyGBP,
}

// Amount is a money value in the currency of its entry.
// It decodes from a JSON number or a numeric string; an empty or
// non-numeric string decodes as 0, so data typed into a text field by older
// clients still loads.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = 0
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(f)
	return nil
}

// CurrencyTotal is the sum of a group of entries sharing one currency.
type CurrencyTotal struct {
	Symbol string `json:"symbol"`
	Amount Amount `json:"amount"`
}

// String renders the total as "฿ 50".
func (c CurrencyTotal) String() string {
	return c.Symbol + " " + strconv.FormatFloat(float64(c.Amount), 'f', -1, 64)
}

// roundHalfUp rounds to the nearest integer with halves going towards +Inf.
// Values outside the int64 range saturate; NaN is 0.
func roundHalfUp(f float64) int64 {
	r := math.Floor(f + 0.5)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}
