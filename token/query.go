// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/allowance"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/history"
	"github.com/hushtoken/hushd/ledger"
	"github.com/hushtoken/hushd/status"
	"github.com/hushtoken/hushd/viewingkey"
)

// Info - public token metadata
//
// TotalSupply is nil when the visibility flag keeps it private
type Info struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	TotalSupply *amount.Amount `json:"total_supply,omitempty"`
}

// Balance - the caller's balance, gated by their viewing key
func Balance(acct *account.Account, key string) (amount.Amount, error) {
	if !viewingkey.Verify(acct, key) {
		return amount.Zero, fault.Unauthorized
	}
	return ledger.Balance(nil, acct), nil
}

// TransferHistory - one page of the account's log, newest first,
// gated by the account's viewing key
func TransferHistory(acct *account.Account, key string, page uint64, pageSize uint64) ([]history.TransferRecord, error) {
	if !viewingkey.Verify(acct, key) {
		return nil, fault.Unauthorized
	}
	return history.Page(nil, acct, page, pageSize)
}

// AllowanceFor - the stored allowance between owner and spender
//
// either party's viewing key grants access
func AllowanceFor(owner *account.Account, spender *account.Account, key string) (allowance.Allowance, error) {
	if !viewingkey.Verify(owner, key) && !viewingkey.Verify(spender, key) {
		return allowance.Allowance{}, fault.Unauthorized
	}
	return allowance.Get(nil, owner, spender), nil
}

// TokenInfo - public metadata query, no viewing key required
func TokenInfo() (*Info, error) {
	constants, err := config.GetConstants(nil)
	if nil != err {
		return nil, err
	}

	info := &Info{
		Name:     constants.Name,
		Symbol:   constants.Symbol,
		Decimals: constants.Decimals,
	}

	if constants.PublicTotalSupply {
		supply, err := config.TotalSupply(nil)
		if nil != err {
			return nil, err
		}
		info.TotalSupply = &supply
	}

	return info, nil
}

// ContractStatus - public status query, no viewing key required
func ContractStatus() (status.Level, error) {
	return status.Get(nil)
}
