/*
Package asset implements fixed-point amounts of ledger assets.
An amount is a signed 128-bit count of the smallest units of a [Symbol],
which combines an alphabetic code with a precision, the number of digits
after the decimal point.

# Features

  - Value semantics: every copy of an amount is independent, and only the
    pointer-receiver methods (SetCoef and the *Assign forms) modify one
  - Checked arithmetic that never wraps or truncates silently
  - Exact textual round-tripping: ParseAmount(a.String()) == a
  - Amounts scoped to an owner with [ExtendedAmount]
  - Conversion of amounts between symbols using exchange rates

# Representation

An [Amount] consists of an [Int128] coefficient and a Symbol.
With the symbol "4,TKN", the coefficient 10000 is rendered as "1.0000 TKN".
The canonical string is derived from the coefficient and the symbol every
time it is needed and is never stored.

# Supported Ranges

The magnitude of an amount never exceeds [MaxAmount], 2^126 - 1,
about 8.5 × 10^37 smallest units.
The range is symmetric, so negation always succeeds.
Two of the 128 bits are held back, so intermediate results of a single
addition or subtraction of valid amounts always fit into the integer type.

# Operations

Amounts support addition, subtraction, multiplication and truncating
division by integers, division by another amount, and comparisons.
Binary operations require both operands to have the same symbol;
operations on extended amounts also require the same owner.
Every operation validates its result before returning it, and methods
that modify the receiver leave it unchanged when they fail.

# Errors

Errors are returned, never swallowed, and wrap one of the package errors:
[ErrFormat], [ErrRange] (as [ErrOverflow] or [ErrUnderflow]),
[ErrSymbolMismatch], [ErrOwnerMismatch], [ErrDivisionByZero],
[ErrInvalidSymbol] and [ErrInvalidAmount].
Only the Must* constructors and [Int128.Quo] with a zero divisor panic.
*/
package asset
