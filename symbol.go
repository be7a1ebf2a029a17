package asset

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxCodeLen is the maximum number of letters in a symbol code.
	MaxCodeLen = 7
	// MaxPrecision is the maximum precision of a symbol.
	// It equals the number of digits in [MaxAmount].
	MaxPrecision = 38
)

// Symbol type represents the unit of an [Amount]: an alphabetic code
// and a precision, the number of digits after the decimal point.
// Two symbols are equal only if both the code and the precision match.
// The zero value is not a valid symbol.
type Symbol struct {
	code string
	prec uint8
}

// NewSymbol returns a symbol with the given code and precision.
//
// NewSymbol returns an error wrapping [ErrInvalidSymbol] if:
//   - the code is empty, longer than [MaxCodeLen], or contains
//     characters other than 'A'-'Z';
//   - the precision is negative or greater than [MaxPrecision].
func NewSymbol(code string, prec int) (Symbol, error) {
	if prec < 0 || prec > MaxPrecision {
		return Symbol{}, fmt.Errorf("%w: precision %v is out of range [0, %v]", ErrInvalidSymbol, prec, MaxPrecision)
	}
	if !validCode(code) {
		return Symbol{}, fmt.Errorf("%w: code %q", ErrInvalidSymbol, code)
	}
	return Symbol{code: code, prec: uint8(prec)}, nil //nolint:gosec
}

// MustNewSymbol is like [NewSymbol] but panics if the symbol is not valid.
// It simplifies safe initialization of global variables holding symbols.
func MustNewSymbol(code string, prec int) Symbol {
	s, err := NewSymbol(code, prec)
	if err != nil {
		panic(fmt.Sprintf("NewSymbol(%q, %v) failed: %v", code, prec, err))
	}
	return s
}

// ParseSymbol converts a string to a symbol.
// The input string must be in the following format:
//
//	4,TKN
//
// where the number before the comma is the precision.
func ParseSymbol(s string) (Symbol, error) {
	p, code, ok := strings.Cut(s, ",")
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %q has no precision", ErrInvalidSymbol, s)
	}
	prec, err := strconv.Atoi(p)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: %q has invalid precision: %w", ErrInvalidSymbol, s, err)
	}
	return NewSymbol(code, prec)
}

// MustParseSymbol is like [ParseSymbol] but panics if the string cannot be parsed.
func MustParseSymbol(s string) Symbol {
	sym, err := ParseSymbol(s)
	if err != nil {
		panic(fmt.Sprintf("ParseSymbol(%q) failed: %v", s, err))
	}
	return sym
}

func validCode(code string) bool {
	if len(code) == 0 || len(code) > MaxCodeLen {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// Code returns the alphabetic code of the symbol.
func (s Symbol) Code() string {
	return s.code
}

// Precision returns the number of digits after the decimal point
// used for amounts of the symbol.
func (s Symbol) Precision() int {
	return int(s.prec)
}

// IsValid returns true if the symbol has a well-formed code and
// a precision within [0, MaxPrecision].
func (s Symbol) IsValid() bool {
	return validCode(s.code) && int(s.prec) <= MaxPrecision
}

// String method implements the [fmt.Stringer] interface and returns
// the symbol in the "4,TKN" form accepted by [ParseSymbol].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (s Symbol) String() string {
	return strconv.Itoa(int(s.prec)) + "," + s.code
}

// MarshalText implements [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseSymbol].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (s *Symbol) UnmarshalText(text []byte) error {
	var err error
	*s, err = ParseSymbol(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Symbol{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (s Symbol) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, s.String()), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseSymbol].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (s *Symbol) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return s.UnmarshalText(text)
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (s *Symbol) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*s, err = ParseSymbol(value)
	case []byte:
		*s, err = ParseSymbol(string(value))
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Symbol{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (s Symbol) Value() (driver.Value, error) {
	return s.String(), nil
}
