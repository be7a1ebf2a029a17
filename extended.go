package asset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap/zapcore"
)

// ExtendedSymbol type represents a symbol together with its owner,
// the account or contract that issued it.
type ExtendedSymbol struct {
	sym   Symbol
	owner string
}

// NewExtendedSymbol returns an extended symbol.
func NewExtendedSymbol(sym Symbol, owner string) ExtendedSymbol {
	return ExtendedSymbol{sym: sym, owner: owner}
}

// Symbol returns the symbol.
func (s ExtendedSymbol) Symbol() Symbol {
	return s.sym
}

// Owner returns the owner of the symbol.
func (s ExtendedSymbol) Owner() string {
	return s.owner
}

// String method implements the [fmt.Stringer] interface and returns
// the extended symbol in the "4,TKN@owner" form.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (s ExtendedSymbol) String() string {
	return s.sym.String() + "@" + s.owner
}

// ExtendedAmount type represents an [Amount] scoped to an owner.
// Arithmetic and ordering are only defined for amounts of the same owner
// and the same symbol.
// The zero value is not valid, extended amounts are created with
// [NewExtendedAmount] or [ParseExtendedAmount].
type ExtendedAmount struct {
	quantity Amount
	owner    string
}

// NewExtendedAmount returns an extended amount.
// NewExtendedAmount returns an error wrapping [ErrInvalidAmount]
// if the quantity is not valid or if the owner is empty, contains '@',
// or has leading or trailing whitespace.
func NewExtendedAmount(quantity Amount, owner string) (ExtendedAmount, error) {
	if !quantity.IsValid() {
		return ExtendedAmount{}, fmt.Errorf("%w: quantity %v of %q", ErrInvalidAmount, quantity, owner)
	}
	if !validOwner(owner) {
		return ExtendedAmount{}, fmt.Errorf("%w: owner %q", ErrInvalidAmount, owner)
	}
	return ExtendedAmount{quantity: quantity, owner: owner}, nil
}

// validOwner reports whether the owner survives the "q@owner" text form unchanged.
func validOwner(owner string) bool {
	return owner != "" &&
		strings.IndexByte(owner, '@') < 0 &&
		strings.Trim(owner, trimChars) == owner
}

// MustNewExtendedAmount is like [NewExtendedAmount] but panics if the quantity or the owner is not valid.
func MustNewExtendedAmount(quantity Amount, owner string) ExtendedAmount {
	a, err := NewExtendedAmount(quantity, owner)
	if err != nil {
		panic(fmt.Sprintf("NewExtendedAmount(%v, %q) failed: %v", quantity, owner, err))
	}
	return a
}

// ParseExtendedAmount converts a string to an extended amount.
// The input string must be in the following format:
//
//	1.0000 TKN@owner
//
// where the part before the '@' is parsed with [ParseAmount].
// Whitespace around the owner is ignored, an owner cannot contain '@'.
func ParseExtendedAmount(s string) (ExtendedAmount, error) {
	pos := strings.IndexByte(s, '@')
	if pos < 0 {
		return ExtendedAmount{}, fmt.Errorf("parsing extended amount %q: %w: missing owner", s, ErrFormat)
	}
	owner := strings.Trim(s[pos+1:], trimChars)
	if owner == "" {
		return ExtendedAmount{}, fmt.Errorf("parsing extended amount %q: %w: empty owner", s, ErrFormat)
	}
	if !validOwner(owner) {
		return ExtendedAmount{}, fmt.Errorf("parsing extended amount %q: %w: invalid owner %q", s, ErrFormat, owner)
	}
	q, err := ParseAmount(s[:pos])
	if err != nil {
		return ExtendedAmount{}, fmt.Errorf("parsing extended amount %q: %w", s, err)
	}
	return ExtendedAmount{quantity: q, owner: owner}, nil
}

// MustParseExtendedAmount is like [ParseExtendedAmount] but panics if the string cannot be parsed.
func MustParseExtendedAmount(s string) ExtendedAmount {
	a, err := ParseExtendedAmount(s)
	if err != nil {
		panic(fmt.Sprintf("ParseExtendedAmount(%q) failed: %v", s, err))
	}
	return a
}

// Quantity returns the wrapped amount.
func (a ExtendedAmount) Quantity() Amount {
	return a.quantity
}

// Owner returns the owner of the amount.
func (a ExtendedAmount) Owner() string {
	return a.owner
}

// ExtendedSymbol returns the symbol of the quantity together with the owner.
func (a ExtendedAmount) ExtendedSymbol() ExtendedSymbol {
	return NewExtendedSymbol(a.quantity.Symbol(), a.owner)
}

// Neg returns an extended amount with the opposite sign and the same owner.
func (a ExtendedAmount) Neg() ExtendedAmount {
	return ExtendedAmount{quantity: a.quantity.Neg(), owner: a.owner}
}

// Add returns the sum of a and b.
// Add returns an error wrapping [ErrOwnerMismatch] if the owners differ,
// otherwise it fails like [Amount.Add].
func (a ExtendedAmount) Add(b ExtendedAmount) (ExtendedAmount, error) {
	if a.owner != b.owner {
		return ExtendedAmount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, ErrOwnerMismatch)
	}
	q, err := a.quantity.Add(b.quantity)
	if err != nil {
		return ExtendedAmount{}, err
	}
	return ExtendedAmount{quantity: q, owner: a.owner}, nil
}

// Sub returns the difference of a and b.
// Sub returns an error wrapping [ErrOwnerMismatch] if the owners differ,
// otherwise it fails like [Amount.Sub].
func (a ExtendedAmount) Sub(b ExtendedAmount) (ExtendedAmount, error) {
	if a.owner != b.owner {
		return ExtendedAmount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, ErrOwnerMismatch)
	}
	q, err := a.quantity.Sub(b.quantity)
	if err != nil {
		return ExtendedAmount{}, err
	}
	return ExtendedAmount{quantity: q, owner: a.owner}, nil
}

// AddAssign sets a to a + b. On error a is not changed.
func (a *ExtendedAmount) AddAssign(b ExtendedAmount) error {
	c, err := a.Add(b)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// SubAssign sets a to a - b. On error a is not changed.
func (a *ExtendedAmount) SubAssign(b ExtendedAmount) error {
	c, err := a.Sub(b)
	if err != nil {
		return err
	}
	*a = c
	return nil
}

// Cmp compares the quantities of a and b like [Amount.Cmp].
// Cmp returns an error wrapping [ErrOwnerMismatch] if the owners differ.
func (a ExtendedAmount) Cmp(b ExtendedAmount) (int, error) {
	if a.owner != b.owner {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, ErrOwnerMismatch)
	}
	return a.quantity.Cmp(b.quantity)
}

// Eq returns true if both the quantities and the owners are equal.
// Unlike the ordering methods, Eq does not require equal owners:
// amounts of different owners are simply not equal.
// The quantities must still have the same symbol.
func (a ExtendedAmount) Eq(b ExtendedAmount) (bool, error) {
	eq, err := a.quantity.Eq(b.quantity)
	if err != nil {
		return false, err
	}
	return eq && a.owner == b.owner, nil
}

// Ne returns true if a and b differ in quantity or owner.
// See also method [ExtendedAmount.Eq].
func (a ExtendedAmount) Ne(b ExtendedAmount) (bool, error) {
	eq, err := a.Eq(b)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Lt returns true if a < b. See also method [ExtendedAmount.Cmp].
func (a ExtendedAmount) Lt(b ExtendedAmount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Le returns true if a <= b. See also method [ExtendedAmount.Cmp].
func (a ExtendedAmount) Le(b ExtendedAmount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c <= 0, nil
}

// Gt returns true if a > b. See also method [ExtendedAmount.Cmp].
func (a ExtendedAmount) Gt(b ExtendedAmount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Ge returns true if a >= b. See also method [ExtendedAmount.Cmp].
func (a ExtendedAmount) Ge(b ExtendedAmount) (bool, error) {
	c, err := a.Cmp(b)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// String method implements the [fmt.Stringer] interface and returns
// the extended amount in the "1.0000 TKN@owner" form.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a ExtendedAmount) String() string {
	return a.quantity.String() + "@" + a.owner
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a ExtendedAmount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also constructor [ParseExtendedAmount].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *ExtendedAmount) UnmarshalText(text []byte) error {
	b, err := ParseExtendedAmount(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", ExtendedAmount{}, err)
	}
	*a = b
	return nil
}

type extendedAmountJSON struct {
	Quantity Amount `json:"quantity"`
	Owner    string `json:"owner"`
}

// MarshalJSON implements the [json.Marshaler] interface.
// The result is an object with "quantity" and "owner" fields.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a ExtendedAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(extendedAmountJSON{Quantity: a.quantity, Owner: a.owner})
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *ExtendedAmount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	var v extendedAmountJSON
	if err := json.Unmarshal(text, &v); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", ExtendedAmount{}, err)
	}
	b, err := NewExtendedAmount(v.Quantity, v.Owner)
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", ExtendedAmount{}, err)
	}
	*a = b
	return nil
}

// EncodeMsgpack implements the [msgpack.CustomEncoder] interface.
// The extended amount is stored as the record [quantity, owner].
func (a ExtendedAmount) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := a.quantity.EncodeMsgpack(enc); err != nil {
		return err
	}
	return enc.EncodeString(a.owner)
}

// DecodeMsgpack implements the [msgpack.CustomDecoder] interface.
func (a *ExtendedAmount) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return fmt.Errorf("decoding %T: %w", ExtendedAmount{}, err)
	}
	if n != 2 {
		return fmt.Errorf("decoding %T: %w: record has %v fields, want 2", ExtendedAmount{}, ErrFormat, n)
	}
	q, err := decodeAmountRecord(dec)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", ExtendedAmount{}, err)
	}
	owner, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("decoding %T: %w", ExtendedAmount{}, err)
	}
	b, err := NewExtendedAmount(q, owner)
	if err != nil {
		return fmt.Errorf("decoding %T: %w", ExtendedAmount{}, err)
	}
	*a = b
	return nil
}

// MarshalLogObject implements the [zapcore.ObjectMarshaler] interface.
func (a ExtendedAmount) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("owner", a.owner)
	return enc.AddObject("quantity", a.quantity)
}
