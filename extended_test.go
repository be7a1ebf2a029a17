package asset

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap/zapcore"
)

func ext(s string) ExtendedAmount {
	return MustParseExtendedAmount(s)
}

func TestNewExtendedAmount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		q := MustParseAmount("1.0000 TKN")
		got, err := NewExtendedAmount(q, "issuer")
		if err != nil {
			t.Fatalf("NewExtendedAmount(%v, \"issuer\") failed: %v", q, err)
		}
		if got.Quantity() != q || got.Owner() != "issuer" {
			t.Errorf("NewExtendedAmount(%v, \"issuer\") = %v", q, got)
		}
		if want := NewExtendedSymbol(tkn, "issuer"); got.ExtendedSymbol() != want {
			t.Errorf("ExtendedSymbol() = %v, want %v", got.ExtendedSymbol(), want)
		}
		if s := got.ExtendedSymbol().String(); s != "4,TKN@issuer" {
			t.Errorf("ExtendedSymbol().String() = %q, want %q", s, "4,TKN@issuer")
		}
	})

	t.Run("error", func(t *testing.T) {
		q := MustParseAmount("1.0000 TKN")
		tests := map[string]struct {
			q     Amount
			owner string
		}{
			"quantity 1": {Amount{}, "issuer"},
			"owner 1":    {q, ""},
			"owner 2":    {q, " issuer"},
			"owner 3":    {q, "issuer\n"},
			"owner 4":    {q, "a@b"},
			"owner 5":    {q, "@"},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := NewExtendedAmount(tt.q, tt.owner)
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("NewExtendedAmount(%v, %q) = %v, want %v", tt.q, tt.owner, err, ErrInvalidAmount)
				}
			})
		}
	})
}

func TestMustNewExtendedAmount(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustNewExtendedAmount(Amount{}, \"issuer\") did not panic")
			}
		}()
		MustNewExtendedAmount(Amount{}, "issuer")
	})
}

func TestParseExtendedAmount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s         string
			wantQty   string
			wantOwner string
		}{
			{"1.0000 TKN@issuer", "1.0000 TKN", "issuer"},
			{"-0.07 USD@bank.gov", "-0.07 USD", "bank.gov"},
			{" 5 SYM @ alice ", "5 SYM", "alice"},
		}
		for _, tt := range tests {
			got, err := ParseExtendedAmount(tt.s)
			if err != nil {
				t.Errorf("ParseExtendedAmount(%q) failed: %v", tt.s, err)
				continue
			}
			if got.Quantity().String() != tt.wantQty || got.Owner() != tt.wantOwner {
				t.Errorf("ParseExtendedAmount(%q) = %v, want %v@%v", tt.s, got, tt.wantQty, tt.wantOwner)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			s       string
			wantErr error
		}{
			"owner 1":    {"1.0000 TKN", ErrFormat},
			"owner 2":    {"1.0000 TKN@", ErrFormat},
			"owner 3":    {"1.0000 TKN@  ", ErrFormat},
			"quantity 1": {"@issuer", ErrFormat},
			"quantity 2": {"1.0000TKN@issuer", ErrFormat},
			"quantity 3": {"1.0000 tkn@issuer", ErrInvalidSymbol},
			"owner 4":    {"5 SYM@a@b", ErrFormat},
			"owner 5":    {"5 SYM@@", ErrFormat},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := ParseExtendedAmount(tt.s)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseExtendedAmount(%q) = %v, want %v", tt.s, err, tt.wantErr)
				}
			})
		}
	})
}

func TestExtendedAmount_String(t *testing.T) {
	tests := []string{
		"1.0000 TKN@issuer",
		"-0.07 USD@bank.gov",
		"5 SYM@alice",
	}
	for _, s := range tests {
		a := ext(s)
		if got := a.String(); got != s {
			t.Errorf("ParseExtendedAmount(%q).String() = %q", s, got)
		}
		b, err := ParseExtendedAmount(a.String())
		if err != nil {
			t.Errorf("ParseExtendedAmount(%q) failed: %v", a, err)
			continue
		}
		if b != a {
			t.Errorf("ParseExtendedAmount(%q) = %v, want %v", a, b, a)
		}
	}
}

func TestExtendedAmount_Add(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a, b := ext("1.0000 TKN@issuer"), ext("0.5000 TKN@issuer")
		got, err := a.Add(b)
		if err != nil {
			t.Fatalf("%v.Add(%v) failed: %v", a, b, err)
		}
		if want := ext("1.5000 TKN@issuer"); got != want {
			t.Errorf("%v.Add(%v) = %v, want %v", a, b, got, want)
		}
		got, err = a.Sub(b)
		if err != nil {
			t.Fatalf("%v.Sub(%v) failed: %v", a, b, err)
		}
		if want := ext("0.5000 TKN@issuer"); got != want {
			t.Errorf("%v.Sub(%v) = %v, want %v", a, b, got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		full := MustNewExtendedAmount(MustNewAmount(MaxAmount(), tkn), "issuer")
		tests := map[string]struct {
			a, b    ExtendedAmount
			wantErr error
		}{
			"owner 1":    {ext("1.0000 TKN@issuer"), ext("1.0000 TKN@other"), ErrOwnerMismatch},
			"symbol 1":   {ext("1.0000 TKN@issuer"), ext("1.00 USD@issuer"), ErrSymbolMismatch},
			"overflow 1": {full, ext("0.0001 TKN@issuer"), ErrOverflow},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := tt.a.Add(tt.b)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("%v.Add(%v) = %v, want %v", tt.a, tt.b, err, tt.wantErr)
				}
			})
		}
		_, err := ext("1.0000 TKN@issuer").Sub(ext("1.0000 TKN@other"))
		if !errors.Is(err, ErrOwnerMismatch) {
			t.Errorf("Sub with different owners = %v, want %v", err, ErrOwnerMismatch)
		}
	})
}

func TestExtendedAmount_Assign(t *testing.T) {
	a := ext("1.0000 TKN@issuer")
	if err := a.AddAssign(ext("2.0000 TKN@issuer")); err != nil {
		t.Fatalf("AddAssign failed: %v", err)
	}
	if err := a.SubAssign(ext("0.5000 TKN@issuer")); err != nil {
		t.Fatalf("SubAssign failed: %v", err)
	}
	if want := ext("2.5000 TKN@issuer"); a != want {
		t.Errorf("1 + 2 - 0.5 = %v, want %v", a, want)
	}
	if err := a.AddAssign(ext("1.0000 TKN@other")); !errors.Is(err, ErrOwnerMismatch) {
		t.Errorf("AddAssign with different owners = %v, want %v", err, ErrOwnerMismatch)
	}
	if err := a.SubAssign(ext("1.00 USD@issuer")); !errors.Is(err, ErrSymbolMismatch) {
		t.Errorf("SubAssign with different symbols = %v, want %v", err, ErrSymbolMismatch)
	}
	if want := ext("2.5000 TKN@issuer"); a != want {
		t.Errorf("failed assignments changed amount to %v, want %v", a, want)
	}
}

func TestExtendedAmount_Neg(t *testing.T) {
	a := ext("1.0000 TKN@issuer")
	if got, want := a.Neg(), ext("-1.0000 TKN@issuer"); got != want {
		t.Errorf("%v.Neg() = %v, want %v", a, got, want)
	}
}

func TestExtendedAmount_Cmp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a, b := ext("1.0000 TKN@issuer"), ext("2.0000 TKN@issuer")
		if got, err := a.Cmp(b); err != nil || got != -1 {
			t.Errorf("%v.Cmp(%v) = (%v, %v), want -1", a, b, got, err)
		}
		if got, err := a.Lt(b); err != nil || !got {
			t.Errorf("%v.Lt(%v) = (%v, %v), want true", a, b, got, err)
		}
		if got, err := a.Le(a); err != nil || !got {
			t.Errorf("%v.Le(%v) = (%v, %v), want true", a, a, got, err)
		}
		if got, err := b.Gt(a); err != nil || !got {
			t.Errorf("%v.Gt(%v) = (%v, %v), want true", b, a, got, err)
		}
		if got, err := a.Ge(b); err != nil || got {
			t.Errorf("%v.Ge(%v) = (%v, %v), want false", a, b, got, err)
		}
	})

	t.Run("error", func(t *testing.T) {
		a, b := ext("1.0000 TKN@issuer"), ext("2.0000 TKN@other")
		preds := map[string]func(ExtendedAmount) (bool, error){
			"Lt": a.Lt, "Le": a.Le, "Gt": a.Gt, "Ge": a.Ge,
		}
		for name, f := range preds {
			if _, err := f(b); !errors.Is(err, ErrOwnerMismatch) {
				t.Errorf("%v.%s(%v) = %v, want %v", a, name, b, err, ErrOwnerMismatch)
			}
		}
		if _, err := a.Cmp(b); !errors.Is(err, ErrOwnerMismatch) {
			t.Errorf("%v.Cmp(%v) = %v, want %v", a, b, err, ErrOwnerMismatch)
		}
		c := ext("1.00 USD@issuer")
		if _, err := a.Lt(c); !errors.Is(err, ErrSymbolMismatch) {
			t.Errorf("%v.Lt(%v) = %v, want %v", a, c, err, ErrSymbolMismatch)
		}
	})
}

func TestExtendedAmount_Eq(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			a, b ExtendedAmount
			want bool
		}{
			{ext("1.0000 TKN@issuer"), ext("1.0000 TKN@issuer"), true},
			{ext("1.0000 TKN@issuer"), ext("2.0000 TKN@issuer"), false},
			{ext("1.0000 TKN@issuer"), ext("1.0000 TKN@other"), false},
		}
		for _, tt := range tests {
			eq, err := tt.a.Eq(tt.b)
			if err != nil {
				t.Errorf("%v.Eq(%v) failed: %v", tt.a, tt.b, err)
				continue
			}
			if eq != tt.want {
				t.Errorf("%v.Eq(%v) = %v, want %v", tt.a, tt.b, eq, tt.want)
			}
			ne, err := tt.a.Ne(tt.b)
			if err != nil {
				t.Errorf("%v.Ne(%v) failed: %v", tt.a, tt.b, err)
				continue
			}
			if ne == tt.want {
				t.Errorf("%v.Ne(%v) = %v, want %v", tt.a, tt.b, ne, !tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		a, b := ext("1.0000 TKN@issuer"), ext("1.00 USD@issuer")
		if _, err := a.Eq(b); !errors.Is(err, ErrSymbolMismatch) {
			t.Errorf("%v.Eq(%v) = %v, want %v", a, b, err, ErrSymbolMismatch)
		}
	})
}

func TestExtendedAmount_Text(t *testing.T) {
	a := ext("-0.07 USD@bank")
	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("%v.MarshalText() failed: %v", a, err)
	}
	var got ExtendedAmount
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
	}
	if got != a {
		t.Errorf("UnmarshalText(%s) = %v, want %v", text, got, a)
	}
	if err := got.UnmarshalText([]byte("-0.07 USD")); !errors.Is(err, ErrFormat) {
		t.Errorf("UnmarshalText(\"-0.07 USD\") = %v, want %v", err, ErrFormat)
	}

	t.Run("owner", func(t *testing.T) {
		q := MustParseAmount("1.0000 TKN")
		for _, owner := range []string{"issuer", "i", "bank.gov", "a-b_c", "x y"} {
			a := MustNewExtendedAmount(q, owner)
			text, err := a.MarshalText()
			if err != nil {
				t.Fatalf("%v.MarshalText() failed: %v", a, err)
			}
			var got ExtendedAmount
			if err := got.UnmarshalText(text); err != nil {
				t.Errorf("UnmarshalText(%q) failed: %v", text, err)
				continue
			}
			if got != a {
				t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, a)
			}
		}
		for _, text := range []string{"1.0000 TKN@", "1.0000 TKN@a@b", "1.0000 TKN@ \t"} {
			var got ExtendedAmount
			if err := got.UnmarshalText([]byte(text)); !errors.Is(err, ErrFormat) {
				t.Errorf("UnmarshalText(%q) = %v, want %v", text, err, ErrFormat)
			}
		}
	})
}

func TestExtendedAmount_JSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := ext("1.0000 TKN@issuer")
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("json.Marshal(%v) failed: %v", a, err)
		}
		if want := `{"quantity":"1.0000 TKN","owner":"issuer"}`; string(data) != want {
			t.Errorf("json.Marshal(%v) = %s, want %s", a, data, want)
		}
		var got ExtendedAmount
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("json.Unmarshal(%s) failed: %v", data, err)
		}
		if got != a {
			t.Errorf("json.Unmarshal(%s) = %v, want %v", data, got, a)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			`{"quantity":"1.0000","owner":"issuer"}`,
			`{"owner":"issuer"}`,
			`{"quantity":"1.0000 TKN","owner":""}`,
			`{"quantity":"1.0000 TKN"}`,
			`{"quantity":"1.0000 TKN","owner":"a@b"}`,
			`{"quantity":"1.0000 TKN","owner":" issuer"}`,
			`[]`,
		}
		for _, tt := range tests {
			var got ExtendedAmount
			if err := json.Unmarshal([]byte(tt), &got); err == nil {
				t.Errorf("json.Unmarshal(%s) did not fail", tt)
			}
		}
		var got ExtendedAmount
		err := json.Unmarshal([]byte(`{"quantity":"1.0000 TKN","owner":"a@b"}`), &got)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("json.Unmarshal(owner \"a@b\") = %v, want %v", err, ErrInvalidAmount)
		}
	})
}

func TestExtendedAmount_Msgpack(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := ext("-0.07 USD@bank")
		data, err := msgpack.Marshal(a)
		if err != nil {
			t.Fatalf("msgpack.Marshal(%v) failed: %v", a, err)
		}
		var got ExtendedAmount
		if err := msgpack.Unmarshal(data, &got); err != nil {
			t.Fatalf("msgpack.Unmarshal(%v) failed: %v", data, err)
		}
		if got != a {
			t.Errorf("msgpack.Unmarshal(%v) = %v, want %v", data, got, a)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]any{
			"fields 1":   []any{[]string{"2,USD", "-7"}},
			"quantity 1": []any{[]string{"2,USD", "x"}, "bank"},
			"owner 1":    []any{[]string{"2,USD", "-7"}, 42},
			"owner 2":    []any{[]string{"2,USD", "-7"}, ""},
			"owner 3":    []any{[]string{"2,USD", "-7"}, "a@b"},
			"owner 4":    []any{[]string{"2,USD", "-7"}, "bank "},
		}
		for name, rec := range tests {
			t.Run(name, func(t *testing.T) {
				data, err := msgpack.Marshal(rec)
				if err != nil {
					t.Fatalf("msgpack.Marshal(%v) failed: %v", rec, err)
				}
				var got ExtendedAmount
				if err := msgpack.Unmarshal(data, &got); err == nil {
					t.Errorf("msgpack.Unmarshal(%v) did not fail", rec)
				}
			})
		}
	})
}

func TestExtendedAmount_MarshalLogObject(t *testing.T) {
	a := ext("1.0000 TKN@issuer")
	enc := zapcore.NewMapObjectEncoder()
	if err := a.MarshalLogObject(enc); err != nil {
		t.Fatalf("%v.MarshalLogObject() failed: %v", a, err)
	}
	if got := enc.Fields["owner"]; got != "issuer" {
		t.Errorf("owner = %v, want %v", got, "issuer")
	}
	qty, ok := enc.Fields["quantity"].(map[string]any)
	if !ok {
		t.Fatalf("quantity = %T, want map", enc.Fields["quantity"])
	}
	if got := qty["amount"]; got != "1.0000 TKN" {
		t.Errorf("quantity.amount = %v, want %v", got, "1.0000 TKN")
	}
}
