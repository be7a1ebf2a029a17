package asset

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"github.com/holiman/uint256"
)

// ExchangeRate represents a unidirectional exchange rate between two symbols,
// as published by a rate oracle for a pair like "TKN-USD".
// The zero value is not a valid exchange rate.
// This type is designed to be safe for concurrent use by multiple goroutines.
type ExchangeRate struct {
	base  Symbol          // symbol being exchanged
	quote Symbol          // symbol being obtained in exchange for the base symbol
	value decimal.Decimal // how many units of quote symbol are needed to exchange for 1 unit of the base symbol
}

// NewExchRate returns a new exchange rate between the base and quote symbols.
//
// NewExchRate returns an error if:
//   - either symbol is not valid;
//   - the rate is not positive;
//   - the symbols are equal and the rate is not 1.
func NewExchRate(base, quote Symbol, rate decimal.Decimal) (ExchangeRate, error) {
	if !base.IsValid() {
		return ExchangeRate{}, fmt.Errorf("base %w %q", ErrInvalidSymbol, base)
	}
	if !quote.IsValid() {
		return ExchangeRate{}, fmt.Errorf("quote %w %q", ErrInvalidSymbol, quote)
	}
	if !rate.IsPos() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be positive")
	}
	if base == quote && !rate.IsOne() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be equal to 1")
	}
	return ExchangeRate{base: base, quote: quote, value: rate}, nil
}

// MustNewExchRate is like [NewExchRate] but panics if the rate cannot be constructed.
func MustNewExchRate(base, quote Symbol, rate decimal.Decimal) ExchangeRate {
	r, err := NewExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("NewExchRate(%v, %v, %v) failed: %v", base, quote, rate, err))
	}
	return r
}

// ParseExchRate converts a pair of symbols and a decimal string to an exchange rate.
// The pair must be in the following format:
//
//	4,TKN-2,USD
//
// See also constructors [ParseSymbol] and [decimal.Parse].
func ParseExchRate(pair, rate string) (ExchangeRate, error) {
	bs, qs, ok := strings.Cut(pair, "-")
	if !ok {
		return ExchangeRate{}, fmt.Errorf("pair parsing: %w: %q has no separator", ErrFormat, pair)
	}
	b, err := ParseSymbol(bs)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("base symbol parsing: %w", err)
	}
	q, err := ParseSymbol(qs)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("quote symbol parsing: %w", err)
	}
	d, err := decimal.Parse(rate)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate parsing: %w", err)
	}
	r, err := NewExchRate(b, q, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("rate construction: %w", err)
	}
	return r, nil
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the strings cannot be parsed.
func MustParseExchRate(pair, rate string) ExchangeRate {
	r, err := ParseExchRate(pair, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q) failed: %v", pair, rate, err))
	}
	return r
}

// Base returns the symbol being exchanged.
func (r ExchangeRate) Base() Symbol {
	return r.base
}

// Quote returns the symbol being obtained in exchange for the base symbol.
func (r ExchangeRate) Quote() Symbol {
	return r.quote
}

// Decimal returns the rate as a decimal.
func (r ExchangeRate) Decimal() decimal.Decimal {
	return r.value
}

// CanConv returns true if [ExchangeRate.Conv] can be used to convert the given amount.
func (r ExchangeRate) CanConv(b Amount) bool {
	return b.Symbol() == r.Base() &&
		r.Base().IsValid() &&
		r.Quote().IsValid() &&
		r.value.IsPos()
}

// Conv returns the amount converted from the base symbol to the quote symbol.
// The result is truncated toward zero to the precision of the quote symbol.
//
// Conv returns an error if:
//   - the amount is not in the base symbol ([ErrSymbolMismatch]);
//   - the magnitude of the result is greater than [MaxAmount] ([ErrOverflow], [ErrUnderflow]).
func (r ExchangeRate) Conv(b Amount) (Amount, error) {
	c, err := r.conv(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", b, r, err)
	}
	return c, nil
}

func (r ExchangeRate) conv(b Amount) (Amount, error) {
	if !r.CanConv(b) {
		return Amount{}, ErrSymbolMismatch
	}
	// |b| * coef / 10^(scale + base precision - quote precision)
	var w uint256.Int
	m := b.Coef().mag()
	w.Mul(&m, uint256.NewInt(r.value.Coef()))
	up := r.quote.Precision()
	down := r.value.Scale() + r.base.Precision()
	if up >= down {
		p := pow10(up - down)
		if _, overflow := w.MulOverflow(&w, &p); overflow {
			return Amount{}, rangeErr(b.Sign())
		}
	} else {
		p := pow10(down - up)
		w.Div(&w, &p)
	}
	if w.Gt(&maxAmount.w) {
		return Amount{}, rangeErr(b.Sign())
	}
	v := truncate(&w)
	if b.IsNeg() {
		v = v.Neg()
	}
	return newAmountUnsafe(v, r.quote), nil
}

// Inv returns the inverse of the exchange rate.
func (r ExchangeRate) Inv() (ExchangeRate, error) {
	d := r.value
	if d.IsZero() {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, ErrDivisionByZero)
	}
	one := d.One()
	e, err := one.Quo(d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	return NewExchRate(r.Quote(), r.Base(), e)
}

// SameSymbols returns true if exchange rates are denominated in the same base
// and quote symbols.
func (r ExchangeRate) SameSymbols(q ExchangeRate) bool {
	return q.Base() == r.Base() && q.Quote() == r.Quote()
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of an exchange rate, "4,TKN/2,USD 1.25".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.Base().String() + "/" + r.Quote().String() + " " + r.value.String()
}
