package asset

import (
	"math"

	"github.com/holiman/uint256"
)

// Int128 type represents a signed 128-bit integer.
// It behaves like a native two's-complement integer type:
// [Int128.Add], [Int128.Sub], [Int128.Mul] and [Int128.Neg] wrap around
// on overflow, and [Int128.Quo] truncates toward zero.
// The zero value is 0. Int128 values are comparable with the == operator
// and safe for concurrent use by multiple goroutines.
type Int128 struct {
	w uint256.Int // sign-extended to 256 bits
}

// NewInt128 returns an Int128 equal to x.
func NewInt128(x int64) Int128 {
	var z Int128
	if x < 0 {
		z.w.SetUint64(uint64(-x)) //nolint:gosec
		z.w.Neg(&z.w)
		return z
	}
	z.w.SetUint64(uint64(x))
	return z
}

// MaxInt128 returns the largest value representable by Int128, 2^127 - 1.
func MaxInt128() Int128 {
	return Int128{w: uint256.Int{math.MaxUint64, math.MaxInt64, 0, 0}}
}

// MinInt128 returns the smallest value representable by Int128, -2^127.
func MinInt128() Int128 {
	return Int128{w: uint256.Int{0, 1 << 63, math.MaxUint64, math.MaxUint64}}
}

// truncate keeps the low 128 bits of w and sign-extends them.
func truncate(w *uint256.Int) Int128 {
	z := Int128{w: *w}
	if z.w[1]>>63 == 1 {
		z.w[2], z.w[3] = math.MaxUint64, math.MaxUint64
	} else {
		z.w[2], z.w[3] = 0, 0
	}
	return z
}

// Add returns x + y.
func (x Int128) Add(y Int128) Int128 {
	var z uint256.Int
	z.Add(&x.w, &y.w)
	return truncate(&z)
}

// Sub returns x - y.
func (x Int128) Sub(y Int128) Int128 {
	var z uint256.Int
	z.Sub(&x.w, &y.w)
	return truncate(&z)
}

// Mul returns x * y.
func (x Int128) Mul(y Int128) Int128 {
	var z uint256.Int
	z.Mul(&x.w, &y.w)
	return truncate(&z)
}

// Quo returns x / y truncated toward zero.
// Quo panics if y is 0.
func (x Int128) Quo(y Int128) Int128 {
	if y.IsZero() {
		panic("asset: Int128 division by zero")
	}
	var z uint256.Int
	z.SDiv(&x.w, &y.w)
	return truncate(&z)
}

// Neg returns -x.
// The result of negating [MinInt128] is MinInt128 itself.
func (x Int128) Neg() Int128 {
	var z uint256.Int
	z.Neg(&x.w)
	return truncate(&z)
}

// Abs returns |x|.
// The result of Abs([MinInt128]) is MinInt128 itself.
func (x Int128) Abs() Int128 {
	var z uint256.Int
	z.Abs(&x.w)
	return truncate(&z)
}

// mag returns |x| without wrapping, so |MinInt128| is exactly 2^127.
func (x Int128) mag() uint256.Int {
	var z uint256.Int
	z.Abs(&x.w)
	return z
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x = 0
//	+1 if x > 0
func (x Int128) Sign() int {
	return x.w.Sign()
}

// IsZero returns true if x is 0.
func (x Int128) IsZero() bool {
	return x.w.IsZero()
}

// Cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x = y
//	+1 if x > y
func (x Int128) Cmp(y Int128) int {
	switch {
	case x.w.Slt(&y.w):
		return -1
	case x.w.Eq(&y.w):
		return 0
	default:
		return 1
	}
}

// Int64 returns x as int64.
// If x does not fit into int64, the result is undefined and ok is false.
func (x Int128) Int64() (v int64, ok bool) {
	ext := uint64(0)
	if x.w[0]>>63 == 1 {
		ext = math.MaxUint64
	}
	if x.w[1] != ext || x.w[2] != ext || x.w[3] != ext {
		return 0, false
	}
	return int64(x.w[0]), true //nolint:gosec
}

// String implements the [fmt.Stringer] interface and returns
// the base-10 representation of x.
// See also function [FormatInt128].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Int128) String() string {
	return FormatInt128(x)
}

// pow10tab[n] holds 10^n. The largest power needed rescales a maximal
// decimal coefficient between two maximal precisions.
var pow10tab = func() [78]uint256.Int {
	var tab [78]uint256.Int
	tab[0].SetOne()
	ten := uint256.NewInt(10)
	for i := 1; i < len(tab); i++ {
		tab[i].Mul(&tab[i-1], ten)
	}
	return tab
}()

func pow10(n int) uint256.Int {
	return pow10tab[n]
}
