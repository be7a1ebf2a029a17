package asset

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"github.com/holiman/uint256"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap/zapcore"
)

// MaxExponent is the exponent of the bound on amount magnitudes:
// every valid amount lies within ±(2^MaxExponent - 1).
// Two bits of the 128-bit value are held back, so negation and a single
// addition of two valid amounts never overflow the integer type itself.
const MaxExponent = 126

var maxAmount = func() Int128 {
	var w uint256.Int
	w.Lsh(uint256.NewInt(1), MaxExponent)
	w.Sub(&w, uint256.NewInt(1))
	return truncate(&w)
}()

// MaxAmount returns the largest magnitude an [Amount] can hold, 2^126 - 1.
func MaxAmount() Int128 {
	return maxAmount
}

// whitespace trimmed around amount strings and their tokens.
const trimChars = "\t\n\v\f\r "

// Amount type represents a fixed-point quantity of a [Symbol].
// The value is an integer count of the smallest units of the symbol:
// with precision 4, the value 10000 stands for "1.0000".
//
// The zero value is not valid, amounts are created with [NewAmount] or
// [ParseAmount]. Amount is a value type: assignment makes an independent
// copy, and amounts are safe for concurrent use by multiple goroutines
// as long as none of them calls a pointer-receiver method on a shared value.
type Amount struct {
	value Int128 // number of smallest units
	sym   Symbol
}

// newAmountUnsafe creates a new amount without checking the range and the symbol.
// Use it only if you are absolutely sure that the arguments are valid.
func newAmountUnsafe(v Int128, sym Symbol) Amount {
	return Amount{value: v, sym: sym}
}

func inRange(v Int128) bool {
	m := v.mag()
	return !m.Gt(&maxAmount.w)
}

func checkRange(v Int128) error {
	if !inRange(v) {
		return rangeErr(v.Sign())
	}
	return nil
}

// NewAmount returns an amount of v smallest units of the symbol.
//
// NewAmount returns an error wrapping [ErrInvalidAmount] if:
//   - the magnitude of v is greater than [MaxAmount] (the error also wraps [ErrRange]);
//   - the symbol is not valid (the error also wraps [ErrInvalidSymbol]).
func NewAmount(v Int128, sym Symbol) (Amount, error) {
	if err := checkRange(v); err != nil {
		return Amount{}, fmt.Errorf("%w: magnitude of %v must be less than 2^%v: %w", ErrInvalidAmount, v, MaxExponent, err)
	}
	if !sym.IsValid() {
		return Amount{}, fmt.Errorf("%w: %w %q", ErrInvalidAmount, ErrInvalidSymbol, sym)
	}
	return newAmountUnsafe(v, sym), nil
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(v Int128, sym Symbol) Amount {
	a, err := NewAmount(v, sym)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%v, %v) failed: %v", v, sym, err))
	}
	return a
}

// NewAmountFromInt64 is like [NewAmount] but takes the value as int64.
func NewAmountFromInt64(v int64, sym Symbol) (Amount, error) {
	return NewAmount(NewInt128(v), sym)
}

// NewAmountFromDecimal converts a decimal to an amount of the symbol.
// If the scale of the decimal is less than the precision of the symbol,
// the result is zero-padded to the right.
//
// NewAmountFromDecimal returns an error if:
//   - the symbol is not valid;
//   - the decimal has non-zero digits beyond the precision of the symbol;
//   - the magnitude of the result is greater than [MaxAmount].
func NewAmountFromDecimal(sym Symbol, d decimal.Decimal) (Amount, error) {
	if !sym.IsValid() {
		return Amount{}, fmt.Errorf("converting %v: %w %q", d, ErrInvalidSymbol, sym)
	}
	prec := sym.Precision()
	if d.Scale() > prec {
		d = d.Trim(prec)
		if d.Scale() > prec {
			return Amount{}, fmt.Errorf("converting %v: %w: %v fractional digits exceed precision %v", d, ErrFormat, d.Scale(), prec)
		}
	}
	var w uint256.Int
	w.SetUint64(d.Coef())
	p := pow10(prec - d.Scale())
	w.Mul(&w, &p)
	sign := 1
	if d.IsNeg() {
		sign = -1
	}
	if w.Gt(&maxAmount.w) {
		return Amount{}, fmt.Errorf("converting %v: %w", d, rangeErr(sign))
	}
	v := truncate(&w)
	if sign < 0 {
		v = v.Neg()
	}
	return newAmountUnsafe(v, sym), nil
}

// ParseAmount converts a string to an amount.
// The input string must be in the following format:
//
//	-?[0-9]+(\.[0-9]+)? CODE
//
// The number of fractional digits becomes the precision of the symbol,
// so "1.0000 TKN" is 10000 units of the symbol 4,TKN.
// Whitespace around the string and around the code is ignored.
//
// ParseAmount returns an error wrapping:
//   - [ErrFormat] if the string is malformed;
//   - [ErrInvalidSymbol] if the code or the precision is not valid;
//   - [ErrRange] if the magnitude is greater than [MaxAmount].
func ParseAmount(s string) (Amount, error) {
	a, err := parseAmount(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return a, nil
}

func parseAmount(s string) (Amount, error) {
	s = strings.Trim(s, trimChars)

	// Amount and symbol
	pos := strings.IndexByte(s, ' ')
	if pos < 0 {
		return Amount{}, fmt.Errorf("%w: missing separator between amount and symbol", ErrFormat)
	}
	code := strings.Trim(s[pos+1:], trimChars)
	num := s[:pos]

	// Integer and fractional parts
	whole, frac := num, ""
	if dot := strings.IndexByte(num, '.'); dot >= 0 {
		if dot == len(num)-1 {
			return Amount{}, fmt.Errorf("%w: missing fraction after decimal point", ErrFormat)
		}
		whole, frac = num[:dot], num[dot+1:]
	}
	if whole == "" || whole == "-" {
		return Amount{}, fmt.Errorf("%w: missing integer part", ErrFormat)
	}

	v, err := ParseInt128(whole + frac)
	if err != nil {
		return Amount{}, err
	}
	sym, err := NewSymbol(code, len(frac))
	if err != nil {
		return Amount{}, err
	}
	if err := checkRange(v); err != nil {
		return Amount{}, err
	}
	return NewAmount(v, sym)
}

// MustParseAmount is like [ParseAmount] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q) failed: %v", s, err))
	}
	return a
}

// Coef returns the coefficient of the amount,
// the number of smallest units of the symbol.
func (a Amount) Coef() Int128 {
	return a.value
}

// Symbol returns the symbol of the amount.
func (a Amount) Symbol() Symbol {
	return a.sym
}

// Decimal returns the amount as a decimal with scale equal to the precision
// of the symbol.
// Decimal returns an error if the precision is greater than [decimal.MaxScale]
// or the value does not fit into a decimal coefficient.
func (a Amount) Decimal() (decimal.Decimal, error) {
	v, ok := a.value.Int64()
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", a, rangeErr(a.Sign()))
	}
	d, err := decimal.New(v, a.sym.Precision())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", a, err)
	}
	return d, nil
}

// IsAmountWithinRange returns true if the magnitude of the value
// does not exceed [MaxAmount].
func (a Amount) IsAmountWithinRange() bool {
	return inRange(a.value)
}

// IsValid returns true if the value is within range and the symbol is valid.
func (a Amount) IsValid() bool {
	return a.IsAmountWithinRange() && a.sym.IsValid()
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.value.Sign()
}

// IsZero returns true if a = 0.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// IsNeg returns true if a < 0.
func (a Amount) IsNeg() bool {
	return a.value.Sign() < 0
}

// IsPos returns true if a > 0.
func (a Amount) IsPos() bool {
	return a.value.Sign() > 0
}

// SameSymbol returns true if both amounts have the same symbol.
func (a Amount) SameSymbol(b Amount) bool {
	return a.sym == b.sym
}

// compatible checks that a binary operation on a and b is allowed.
func (a Amount) compatible(b Amount) error {
	if !a.SameSymbol(b) {
		return ErrSymbolMismatch
	}
	if !a.sym.IsValid() {
		return ErrInvalidSymbol
	}
	return nil
}

// SetCoef replaces the coefficient of the amount.
// SetCoef returns an error wrapping [ErrRange] if the magnitude of v
// is greater than [MaxAmount], in which case the amount is not changed.
func (a *Amount) SetCoef(v Int128) error {
	if err := checkRange(v); err != nil {
		return fmt.Errorf("setting coefficient of %v to %v: %w", a, v, err)
	}
	a.value = v
	return nil
}

// Neg returns an amount with the opposite sign.
// The range is symmetric, so Neg always succeeds.
func (a Amount) Neg() Amount {
	return newAmountUnsafe(a.value.Neg(), a.sym)
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return newAmountUnsafe(a.value.Abs(), a.sym)
}

// Add returns the sum of amounts a and b.
//
// Add returns an error if:
//   - amounts have different symbols ([ErrSymbolMismatch]);
//   - the magnitude of the result is greater than [MaxAmount] ([ErrOverflow], [ErrUnderflow]).
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.add(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) add(b Amount) (Amount, error) {
	if err := a.compatible(b); err != nil {
		return Amount{}, err
	}
	v := a.value.Add(b.value)
	if err := checkRange(v); err != nil {
		return Amount{}, err
	}
	return newAmountUnsafe(v, a.sym), nil
}

// Sub returns the difference of amounts a and b.
//
// Sub returns an error if:
//   - amounts have different symbols ([ErrSymbolMismatch]);
//   - the magnitude of the result is greater than [MaxAmount] ([ErrOverflow], [ErrUnderflow]).
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.sub(b)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, err)
	}
	return c, nil
}

func (a Amount) sub(b Amount) (Amount, error) {
	if err := a.compatible(b); err != nil {
		return Amount{}, err
	}
	v := a.value.Sub(b.value)
	if err := checkRange(v); err != nil {
		return Amount{}, err
	}
	return newAmountUnsafe(v, a.sym), nil
}

// Mul returns the amount a multiplied by the integer e.
// Mul returns an error wrapping [ErrOverflow] or [ErrUnderflow] if the
// magnitude of the result would be greater than [MaxAmount];
// the check is made before multiplying.
func (a Amount) Mul(e Int128) (Amount, error) {
	c, err := a.mul(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) mul(e Int128) (Amount, error) {
	if !a.sym.IsValid() {
		return Amount{}, ErrInvalidSymbol
	}
	if e.IsZero() || a.value.IsZero() {
		return newAmountUnsafe(Int128{}, a.sym), nil
	}
	// |a * e| <= MaxAmount if and only if |a| <= MaxAmount / |e|,
	// whatever the signs of a and e.
	em, am := e.mag(), a.value.mag()
	var limit uint256.Int
	limit.Div(&maxAmount.w, &em)
	if am.Gt(&limit) {
		return Amount{}, rangeErr(a.value.Sign() * e.Sign())
	}
	return newAmountUnsafe(a.value.Mul(e), a.sym), nil
}

// Quo returns the amount a divided by the integer e, truncated toward zero.
// Quo returns an error wrapping [ErrDivisionByZero] if e is 0.
func (a Amount) Quo(e Int128) (Amount, error) {
	c, err := a.quo(e)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return c, nil
}

func (a Amount) quo(e Int128) (Amount, error) {
	if !a.sym.IsValid() {
		return Amount{}, ErrInvalidSymbol
	}
	if e.IsZero() {
		return Amount{}, ErrDivisionByZero
	}
	v := a.value.Quo(e)
	if err := checkRange(v); err != nil {
		return Amount{}, err
	}
	return newAmountUnsafe(v, a.sym), nil
}

// QuoAmount returns how many times b fits into a, truncated toward zero.
//
// QuoAmount returns an error if:
//   - amounts have different symbols ([ErrSymbolMismatch]);
//   - b is zero ([ErrDivisionByZero]).
func (a Amount) QuoAmount(b Amount) (Int128, error) {
	if err := a.compatible(b); err != nil {
		return Int128{}, fmt.Errorf("computing [%v / %v]: %w", a, b, err)
	}
	if b.IsZero() {
		return Int128{}, fmt.Errorf("computing [%v / %v]: %w", a, b, ErrDivisionByZero)
	}
	return a.value.Quo(b.value), nil
}

// AddAssign sets a to a + b.
// On error a is not changed. See also method [Amount.Add].
func (a *Amount) AddAssign(b Amount) error {
	c, err := a.Add(b)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// SubAssign sets a to a - b.
// On error a is not changed. See also method [Amount.Sub].
func (a *Amount) SubAssign(b Amount) error {
	c, err := a.Sub(b)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// MulAssign sets a to a * e.
// On error a is not changed. See also method [Amount.Mul].
func (a *Amount) MulAssign(e Int128) error {
	c, err := a.Mul(e)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// QuoAssign sets a to a / e.
// On error a is not changed. See also method [Amount.Quo].
func (a *Amount) QuoAssign(e Int128) error {
	c, err := a.Quo(e)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Cmp returns an error wrapping [ErrSymbolMismatch] if amounts have different symbols.
func (a Amount) Cmp(b Amount) (int, error) {
	if err := a.compatible(b); err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, err)
	}
	return a.value.Cmp(b.value), nil
}

// Eq returns true if a = b. See also method [Amount.Cmp].
func (a Amount) Eq(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Ne returns true if a != b. See also method [Amount.Eq].
func (a Amount) Ne(b Amount) (bool, error) {
	eq, err := a.Eq(b)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Lt returns true if a < b. See also method [Amount.Cmp].
func (a Amount) Lt(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Le returns true if a <= b. See also method [Amount.Cmp].
func (a Amount) Le(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}

// Gt returns true if a > b. See also method [Amount.Cmp].
func (a Amount) Gt(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Ge returns true if a >= b. See also method [Amount.Cmp].
func (a Amount) Ge(b Amount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// Min returns the smaller amount.
// Min returns an error wrapping [ErrSymbolMismatch] if amounts have different symbols.
func (a Amount) Min(b Amount) (Amount, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Amount{}, fmt.Errorf("finding minimum: %w", err)
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}

// Max returns the larger amount.
// Max returns an error wrapping [ErrSymbolMismatch] if amounts have different symbols.
func (a Amount) Max(b Amount) (Amount, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return Amount{}, fmt.Errorf("finding maximum: %w", err)
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

// appendNumber appends the decimal number without the code,
// e.g. "-0.07" for -7 units with precision 2.
func (a Amount) appendNumber(buf []byte) []byte {
	prec := a.sym.Precision()
	digs := appendDigits(make([]byte, 0, 40), a.value)
	if len(digs) <= prec {
		pad := make([]byte, prec+1-len(digs), prec+1)
		for i := range pad {
			pad[i] = '0'
		}
		digs = append(pad, digs...)
	}
	if a.value.Sign() < 0 {
		buf = append(buf, '-')
	}
	split := len(digs) - prec
	buf = append(buf, digs[:split]...)
	if prec > 0 {
		buf = append(buf, '.')
		buf = append(buf, digs[split:]...)
	}
	return buf
}

// appendText appends the canonical representation of the amount.
func (a Amount) appendText(buf []byte) []byte {
	buf = a.appendNumber(buf)
	buf = append(buf, ' ')
	return append(buf, a.sym.Code()...)
}

// String method implements the [fmt.Stringer] interface and returns
// the canonical representation of the amount, "1.0000 TKN".
// The fractional part has exactly as many digits as the precision of
// the symbol and is omitted when the precision is 0.
// The result is accepted by [ParseAmount] and parses back to the same amount.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return string(a.appendText(make([]byte, 0, 48)))
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example      | Description          |
//	| ------ | ------------ | -------------------- |
//	| %s, %v | 1.0000 TKN   | Canonical            |
//	| %q     | "1.0000 TKN" | Quoted canonical     |
//	| %f     | 1.0000       | Number without code  |
//	| %c     | TKN          | Code                 |
//
// The '-' format flag can be used with all verbs together with a width.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
func (a Amount) Format(state fmt.State, verb rune) {
	var buf []byte
	switch verb {
	case 'f', 'F':
		buf = a.appendNumber(buf)
	case 'c', 'C':
		buf = append(buf, a.sym.Code()...)
	case 'q', 'Q':
		buf = append(buf, '"')
		buf = a.appendText(buf)
		buf = append(buf, '"')
	default:
		buf = a.appendText(buf)
	}

	// Padding
	if w, ok := state.Width(); ok && w > len(buf) {
		pad := []byte(strings.Repeat(" ", w-len(buf)))
		if state.Flag('-') {
			buf = append(buf, pad...)
		} else {
			buf = append(pad, buf...)
		}
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(asset.Amount="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Amount.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return a.appendText(nil), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseAmount].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	b, err := ParseAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Amount{}, err)
	}
	*a = b
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the canonical string in quotes.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 50)
	text = append(text, '"')
	text = a.appendText(text)
	text = append(text, '"')
	return text, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseAmount].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return a.UnmarshalText(text)
}

// Scan implements the [sql.Scanner] interface.
// See also constructor [ParseAmount].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (a *Amount) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*a, err = ParseAmount(value)
	case []byte:
		*a, err = ParseAmount(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values", Amount{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Amount{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// Value always returns the canonical string.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// Only BSON strings and nulls are supported.
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (a *Amount) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 2:
		var s string
		s, err = parseBSONString(data)
		if err == nil {
			*a, err = ParseAmount(s)
		}
	case 10:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Amount{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns a BSON string with the canonical representation.
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (a Amount) MarshalBSONValue() (typ byte, data []byte, err error) {
	return 2, bsonString(a.String()), nil
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
// The amount is stored as the record [symbol, coef], for example
// ["4,TKN", "10000"]. The canonical string is not stored.
func (a Amount) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(a.sym.String()); err != nil {
		return err
	}
	return enc.EncodeString(a.value.String())
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
// Besides the record written by [Amount.EncodeMsgpack], it accepts the
// layout [symbol, coef, canonical] and checks that the stored
// canonical string matches the decoded amount.
func (a *Amount) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := decodeAmountRecord(dec)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", Amount{}, err)
	}
	*a = b
	return nil
}

func decodeAmountRecord(dec *msgpack.Decoder) (Amount, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return Amount{}, err
	}
	if n != 2 && n != 3 {
		return Amount{}, fmt.Errorf("%w: record has %v fields, want 2 or 3", ErrFormat, n)
	}
	s, err := dec.DecodeString()
	if err != nil {
		return Amount{}, err
	}
	sym, err := ParseSymbol(s)
	if err != nil {
		return Amount{}, err
	}
	s, err = dec.DecodeString()
	if err != nil {
		return Amount{}, err
	}
	v, err := ParseInt128(s)
	if err != nil {
		return Amount{}, err
	}
	a, err := NewAmount(v, sym)
	if err != nil {
		return Amount{}, err
	}
	if n == 3 {
		s, err = dec.DecodeString()
		if err != nil {
			return Amount{}, err
		}
		if s != a.String() {
			return Amount{}, fmt.Errorf("%w: stored string %q does not match %q", ErrFormat, s, a)
		}
	}
	return a, nil
}

// MarshalLogObject implements the [zapcore.ObjectMarshaler] interface,
// so amounts can be logged with [zap.Object].
//
// [zap.Object]: https://pkg.go.dev/go.uber.org/zap#Object
func (a Amount) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("symbol", a.sym.String())
	enc.AddString("coef", a.value.String())
	enc.AddString("amount", a.String())
	return nil
}
