package asset

import (
	"fmt"

	"github.com/holiman/uint256"
)

// FormatInt128 returns the base-10 representation of x.
// Negative numbers start with '-'; there are no leading zeros
// except for the number 0 itself.
func FormatInt128(x Int128) string {
	buf := make([]byte, 0, 40)
	if x.Sign() < 0 {
		buf = append(buf, '-')
	}
	return string(appendDigits(buf, x))
}

// appendDigits appends the decimal digits of |x| to buf.
func appendDigits(buf []byte, x Int128) []byte {
	m := x.mag()
	if m.IsZero() {
		return append(buf, '0')
	}
	var digs [40]byte
	pos := len(digs)
	ten := uint256.NewInt(10)
	for !m.IsZero() {
		var q, r uint256.Int
		q.Div(&m, ten)
		r.Mul(&q, ten)
		r.Sub(&m, &r)
		pos--
		digs[pos] = byte(r.Uint64()) + '0'
		m = q
	}
	return append(buf, digs[pos:]...)
}

// ParseInt128 converts a base-10 string to Int128.
// The input string must be in the following format:
//
//	-?[0-9]+
//
// ParseInt128 returns an error wrapping [ErrFormat] if the string is empty,
// contains a character other than a digit or a leading '-',
// or its magnitude is greater than [MaxInt128].
// As a consequence, [MinInt128] has no parsable representation.
func ParseInt128(s string) (Int128, error) {
	digits := s
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return Int128{}, fmt.Errorf("%w: %q is not a number", ErrFormat, s)
	}
	ten := NewInt128(10)
	var v Int128
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Int128{}, fmt.Errorf("%w: unexpected character %q in %q", ErrFormat, c, s)
		}
		d := NewInt128(int64(c - '0'))
		next := v.Mul(ten).Add(d)
		// The second condition catches a carry into the sign bit by the last digit.
		if next.Sub(d).Quo(ten) != v || next.Sign() < 0 {
			return Int128{}, fmt.Errorf("%w: %q overflows 128 bits", ErrFormat, s)
		}
		v = next
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

// parseBSONString parses a BSON string.
// The byte order of the length prefix must be little-endian.
func parseBSONString(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("%w: invalid data length %v", ErrFormat, len(data))
	}
	u := uint32(data[0])
	u |= uint32(data[1]) << 8
	u |= uint32(data[2]) << 16
	u |= uint32(data[3]) << 24
	l := int(int32(u)) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return "", fmt.Errorf("%w: invalid string length %v", ErrFormat, l)
	}
	if data[l+4-1] != 0 {
		return "", fmt.Errorf("%w: invalid null terminator %v", ErrFormat, data[l+4-1])
	}
	return string(data[4 : l+4-1]), nil
}

// bsonString returns the BSON string representation of s.
// The byte order of the length prefix is little-endian.
func bsonString(s string) []byte {
	l := len(s) + 1
	data := make([]byte, 4+l)
	data[0] = byte(l)
	data[1] = byte(l >> 8)
	data[2] = byte(l >> 16)
	data[3] = byte(l >> 24)
	copy(data[4:], s)
	data[4+l-1] = 0
	return data
}
