// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amount - unsigned 128 bit token quantities
//
// all ledger and allowance arithmetic is checked: an addition that
// would wrap past the maximum representable value or a subtraction
// that would go below zero is reported as an error and no value is
// produced
package amount

import (
	"encoding/binary"
	"math/bits"
	"strconv"

	"github.com/hushtoken/hushd/fault"
)

// ByteSize - number of bytes in the fixed big endian representation
const ByteSize = 16

// Amount - an unsigned 128 bit quantity of tokens
type Amount struct {
	hi uint64
	lo uint64
}

// Zero - the zero quantity
var Zero = Amount{}

// Max - the maximum representable quantity
var Max = Amount{hi: ^uint64(0), lo: ^uint64(0)}

// FromUint64 - widen a uint64 to an Amount
func FromUint64(u uint64) Amount {
	return Amount{lo: u}
}

// Parse - convert a decimal string to an Amount
//
// fails on an empty string, a non-digit character or a value that
// does not fit in 128 bits
func Parse(s string) (Amount, error) {
	if "" == s {
		return Zero, fault.InvalidAmount
	}
	a := Zero
	for i := 0; i < len(s); i += 1 {
		c := s[i]
		if c < '0' || c > '9' {
			return Zero, fault.InvalidAmount
		}
		var err error
		a, err = a.mulTenAdd(uint64(c - '0'))
		if nil != err {
			return Zero, fault.InvalidAmount
		}
	}
	return a, nil
}

// a*10 + d with overflow detection
func (a Amount) mulTenAdd(d uint64) (Amount, error) {
	hiCarry, hiProd := bits.Mul64(a.hi, 10)
	if 0 != hiCarry {
		return Zero, fault.AmountOverflow
	}
	loCarry, loProd := bits.Mul64(a.lo, 10)
	hi, c := bits.Add64(hiProd, loCarry, 0)
	if 0 != c {
		return Zero, fault.AmountOverflow
	}
	lo, c := bits.Add64(loProd, d, 0)
	hi, c = bits.Add64(hi, 0, c)
	if 0 != c {
		return Zero, fault.AmountOverflow
	}
	return Amount{hi: hi, lo: lo}, nil
}

// Add - checked addition
func (a Amount) Add(b Amount) (Amount, error) {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, carry := bits.Add64(a.hi, b.hi, carry)
	if 0 != carry {
		return Zero, fault.AmountOverflow
	}
	return Amount{hi: hi, lo: lo}, nil
}

// Sub - checked subtraction
func (a Amount) Sub(b Amount) (Amount, error) {
	lo, borrow := bits.Sub64(a.lo, b.lo, 0)
	hi, borrow := bits.Sub64(a.hi, b.hi, borrow)
	if 0 != borrow {
		return Zero, fault.AmountUnderflow
	}
	return Amount{hi: hi, lo: lo}, nil
}

// Cmp - three way comparison: -1, 0 or +1
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.hi > b.hi:
		return 1
	case a.hi < b.hi:
		return -1
	case a.lo > b.lo:
		return 1
	case a.lo < b.lo:
		return -1
	default:
		return 0
	}
}

// IsZero - true if the amount is exactly zero
func (a Amount) IsZero() bool {
	return 0 == a.hi && 0 == a.lo
}

// Bytes - fixed 16 byte big endian representation
func (a Amount) Bytes() []byte {
	buffer := make([]byte, ByteSize)
	binary.BigEndian.PutUint64(buffer[:8], a.hi)
	binary.BigEndian.PutUint64(buffer[8:], a.lo)
	return buffer
}

// FromBytes - decode the fixed 16 byte big endian representation
func FromBytes(buffer []byte) (Amount, error) {
	if ByteSize != len(buffer) {
		return Zero, fault.InvalidAmount
	}
	return Amount{
		hi: binary.BigEndian.Uint64(buffer[:8]),
		lo: binary.BigEndian.Uint64(buffer[8:]),
	}, nil
}

// String - decimal representation
func (a Amount) String() string {
	if 0 == a.hi {
		return strconv.FormatUint(a.lo, 10)
	}
	// 39 digits is sufficient for 2^128-1
	digits := make([]byte, 0, 39)
	for !a.IsZero() {
		var d uint64
		a, d = a.divTen()
		digits = append(digits, byte('0'+d))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// a/10 and the remainder
func (a Amount) divTen() (Amount, uint64) {
	hi := a.hi / 10
	r := a.hi % 10
	lo, rem := bits.Div64(r, a.lo, 10)
	return Amount{hi: hi, lo: lo}, rem
}

// MarshalText - decimal string for JSON responses
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - parse a decimal string
func (a *Amount) UnmarshalText(s []byte) error {
	parsed, err := Parse(string(s))
	if nil != err {
		return err
	}
	*a = parsed
	return nil
}
