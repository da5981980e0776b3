// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package allowance - delegated spending permissions
//
// an allowance caps how much a spender may move out of an owner's
// balance, optionally bounded by an expiration timestamp supplied by
// the caller's environment
package allowance

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// NoExpiration - expiration value meaning the allowance never expires
const NoExpiration uint64 = 0

// Allowance - stored allowance for an (owner, spender) pair
type Allowance struct {
	Amount     amount.Amount `json:"amount"`
	Expiration uint64        `json:"expiration,omitempty"`
}

const packedSize = amount.ByteSize + 8

// owner ++ spender
func allowanceKey(owner *account.Account, spender *account.Account) []byte {
	key := make([]byte, 0, 2*account.AccountSize)
	key = append(key, owner.Bytes()...)
	key = append(key, spender.Bytes()...)
	return key
}

// Get - stored allowance, zero with no expiration if absent
//
// a nil trx reads the committed state directly
func Get(trx storage.Transaction, owner *account.Account, spender *account.Account) Allowance {
	key := allowanceKey(owner, spender)

	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.Allowances.Get(key)
	} else {
		buffer = trx.Get(storage.Pool.Allowances, key)
	}
	if nil == buffer {
		return Allowance{}
	}
	if packedSize != len(buffer) {
		logger.Panicf("allowance.Get: corrupt record for: %x", key)
	}
	amt, err := amount.FromBytes(buffer[:amount.ByteSize])
	if nil != err {
		logger.Panicf("allowance.Get: corrupt amount for: %x", key)
	}
	return Allowance{
		Amount:     amt,
		Expiration: binary.BigEndian.Uint64(buffer[amount.ByteSize:]),
	}
}

func put(trx storage.Transaction, owner *account.Account, spender *account.Account, a Allowance) {
	buffer := make([]byte, 0, packedSize)
	buffer = append(buffer, a.Amount.Bytes()...)
	expiration := make([]byte, 8)
	binary.BigEndian.PutUint64(expiration, a.Expiration)
	buffer = append(buffer, expiration...)
	trx.Put(storage.Pool.Allowances, allowanceKey(owner, spender), buffer)
}

// Set - absolute overwrite of amount and expiration
func Set(trx storage.Transaction, owner *account.Account, spender *account.Account, amt amount.Amount, expiration uint64) {
	put(trx, owner, spender, Allowance{
		Amount:     amt,
		Expiration: expiration,
	})
}

// Increase - checked addition to the current amount
//
// a nil expiration leaves the stored expiration unchanged
func Increase(trx storage.Transaction, owner *account.Account, spender *account.Account, delta amount.Amount, expiration *uint64) (Allowance, error) {
	current := Get(trx, owner, spender)

	newAmount, err := current.Amount.Add(delta)
	if nil != err {
		return Allowance{}, err
	}
	current.Amount = newAmount
	if nil != expiration {
		current.Expiration = *expiration
	}
	put(trx, owner, spender, current)
	return current, nil
}

// Decrease - subtract from the current amount, clamped at zero
//
// a nil expiration leaves the stored expiration unchanged
func Decrease(trx storage.Transaction, owner *account.Account, spender *account.Account, delta amount.Amount, expiration *uint64) Allowance {
	current := Get(trx, owner, spender)

	newAmount, err := current.Amount.Sub(delta)
	if nil != err {
		newAmount = amount.Zero
	}
	current.Amount = newAmount
	if nil != expiration {
		current.Expiration = *expiration
	}
	put(trx, owner, spender, current)
	return current
}

// Consume - spend part of the allowance
//
// must only be called as part of a combined ledger transfer inside
// the same transaction, so the allowance debit and the balance
// movement commit or abort together
func Consume(trx storage.Transaction, owner *account.Account, spender *account.Account, amt amount.Amount, now uint64) error {
	current := Get(trx, owner, spender)

	if NoExpiration != current.Expiration && now > current.Expiration {
		return fault.AllowanceExpired
	}

	newAmount, err := current.Amount.Sub(amt)
	if nil != err {
		return fault.InsufficientAllowance
	}
	current.Amount = newAmount
	put(trx, owner, spender, current)
	return nil
}
