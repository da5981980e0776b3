// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the account balance map
//
// invariant: the sum of all balances equals the stored total supply
// at every observable point; mint and burn are the only operations
// allowed to move that sum, and they adjust balance and supply in
// the same transaction
package ledger

import (
	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// Balance - stored balance for an account, zero if absent
//
// a nil trx reads the committed state directly
func Balance(trx storage.Transaction, acct *account.Account) amount.Amount {
	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.Balances.Get(acct.Bytes())
	} else {
		buffer = trx.Get(storage.Pool.Balances, acct.Bytes())
	}
	if nil == buffer {
		return amount.Zero
	}
	balance, err := amount.FromBytes(buffer)
	if nil != err {
		logger.Panicf("ledger.Balance: corrupt record for: %x", acct.Bytes())
	}
	return balance
}

// Transfer - move tokens between two accounts
//
// both the checked debit and the checked credit are computed before
// either result is stored, so a failure of one half cannot leave the
// other half applied
func Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amt amount.Amount) error {

	fromBalance := Balance(trx, from)

	newFromBalance, err := fromBalance.Sub(amt)
	if nil != err {
		return fault.InsufficientFunds
	}

	// a self transfer verifies the balance but moves nothing
	if *from == *to {
		return nil
	}

	newToBalance, err := Balance(trx, to).Add(amt)
	if nil != err {
		return err
	}

	trx.Put(storage.Pool.Balances, from.Bytes(), newFromBalance.Bytes())
	trx.Put(storage.Pool.Balances, to.Bytes(), newToBalance.Bytes())
	return nil
}

// Mint - create tokens on one account and grow the total supply
func Mint(trx storage.Transaction, acct *account.Account, amt amount.Amount) error {

	newBalance, err := Balance(trx, acct).Add(amt)
	if nil != err {
		return err
	}

	supply, err := config.TotalSupply(trx)
	if nil != err {
		return err
	}
	newSupply, err := supply.Add(amt)
	if nil != err {
		return err
	}

	trx.Put(storage.Pool.Balances, acct.Bytes(), newBalance.Bytes())
	config.SetTotalSupply(trx, newSupply)
	return nil
}

// Burn - destroy tokens on one account and shrink the total supply
func Burn(trx storage.Transaction, acct *account.Account, amt amount.Amount) error {

	newBalance, err := Balance(trx, acct).Sub(amt)
	if nil != err {
		return fault.InsufficientFunds
	}

	supply, err := config.TotalSupply(trx)
	if nil != err {
		return err
	}
	newSupply, err := supply.Sub(amt)
	if nil != err {
		// supply below the sum of balances means a prior bug
		logger.Panicf("ledger.Burn: total supply underflow for: %x", acct.Bytes())
	}

	trx.Put(storage.Pool.Balances, acct.Bytes(), newBalance.Bytes())
	config.SetTotalSupply(trx, newSupply)
	return nil
}
