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
	"github.com/hushtoken/hushd/history"
	"github.com/hushtoken/hushd/ledger"
	"github.com/hushtoken/hushd/status"
	"github.com/hushtoken/hushd/storage"
	"github.com/hushtoken/hushd/viewingkey"
)

// Transfer - move tokens from the caller to another account
func Transfer(caller *account.Account, to *account.Account, amt amount.Amount) error {
	return inTransaction(func(trx storage.Transaction) error {
		return transfer(trx, caller, caller, to, amt)
	})
}

// Send - Transfer plus a notification to the receiver's registered
// callback, if any
func Send(caller *account.Account, to *account.Account, amt amount.Amount, msg []byte) error {
	err := Transfer(caller, to, amt)
	if nil != err {
		return err
	}
	notifyReceiver(caller, caller, to, amt, msg)
	return nil
}

// TransferFrom - delegated transfer spending the caller's allowance
//
// now is the timestamp supplied by the caller's environment, used
// only for the allowance expiration check
func TransferFrom(caller *account.Account, owner *account.Account, to *account.Account, amt amount.Amount, now uint64) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.Normal)
		if nil != err {
			return err
		}
		err = allowance.Consume(trx, owner, caller, amt, now)
		if nil != err {
			return err
		}
		err = ledger.Transfer(trx, owner, to, amt)
		if nil != err {
			return err
		}
		return appendHistory(trx, owner, caller, to, amt)
	})
}

// SendFrom - TransferFrom plus a notification to the receiver's
// registered callback, if any
func SendFrom(caller *account.Account, owner *account.Account, to *account.Account, amt amount.Amount, msg []byte, now uint64) error {
	err := TransferFrom(caller, owner, to, amt, now)
	if nil != err {
		return err
	}
	notifyReceiver(caller, owner, to, amt, msg)
	return nil
}

// IncreaseAllowance - checked addition to the caller's grant
//
// a nil expiration leaves the stored expiration unchanged
func IncreaseAllowance(caller *account.Account, spender *account.Account, delta amount.Amount, expiration *uint64) (allowance.Allowance, error) {
	result := allowance.Allowance{}
	err := inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.Normal)
		if nil != err {
			return err
		}
		var inner error
		result, inner = allowance.Increase(trx, caller, spender, delta, expiration)
		return inner
	})
	return result, err
}

// DecreaseAllowance - subtract from the caller's grant, clamped at
// zero
func DecreaseAllowance(caller *account.Account, spender *account.Account, delta amount.Amount, expiration *uint64) (allowance.Allowance, error) {
	result := allowance.Allowance{}
	err := inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.Normal)
		if nil != err {
			return err
		}
		result = allowance.Decrease(trx, caller, spender, delta, expiration)
		return nil
	})
	return result, err
}

// CreateViewingKey - derive and store a fresh viewing key
//
// allowed at any contract status so an account holder can always
// regain read access to their own data
func CreateViewingKey(caller *account.Account, entropy []byte, randomness []byte) (string, error) {
	key := ""
	err := inTransaction(func(trx storage.Transaction) error {
		var inner error
		key, inner = viewingkey.Create(trx, caller, entropy, randomness)
		return inner
	})
	return key, err
}

// SetViewingKey - store a caller chosen viewing key, allowed at any
// contract status
func SetViewingKey(caller *account.Account, key string) error {
	return inTransaction(func(trx storage.Transaction) error {
		viewingkey.Set(trx, caller, key)
		return nil
	})
}

// Deposit - convert collateral into tokens on the caller's account
//
// the collateral movement itself is the host's concern
func Deposit(caller *account.Account, amt amount.Amount) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.Normal)
		if nil != err {
			return err
		}
		return ledger.Mint(trx, caller, amt)
	})
}

// Redeem - burn tokens to release collateral
//
// still allowed under the restricted status so holders can exit
func Redeem(caller *account.Account, amt amount.Amount) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.RestrictedButRedeemable)
		if nil != err {
			return err
		}
		return ledger.Burn(trx, caller, amt)
	})
}

// RegisterReceive - store the caller's callback code hash for future
// Send notifications
func RegisterReceive(caller *account.Account, codeHash []byte) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := status.Check(trx, status.Normal)
		if nil != err {
			return err
		}
		trx.Put(storage.Pool.Receivers, caller.Bytes(), codeHash)
		return nil
	})
}

// ChangeAdmin - hand the admin role to another account
func ChangeAdmin(caller *account.Account, newAdmin *account.Account) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := checkAdmin(trx, caller)
		if nil != err {
			return err
		}
		return config.SetAdmin(trx, newAdmin)
	})
}

// SetContractStatus - move the operating mode gate
func SetContractStatus(caller *account.Account, level status.Level) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := checkAdmin(trx, caller)
		if nil != err {
			return err
		}
		return status.Set(trx, level)
	})
}

// shared body of Transfer and Send
func transfer(trx storage.Transaction, from *account.Account, sender *account.Account, to *account.Account, amt amount.Amount) error {
	err := status.Check(trx, status.Normal)
	if nil != err {
		return err
	}
	err = ledger.Transfer(trx, from, to, amt)
	if nil != err {
		return err
	}
	return appendHistory(trx, from, sender, to, amt)
}

// record one logical transfer under the token symbol
func appendHistory(trx storage.Transaction, from *account.Account, sender *account.Account, to *account.Account, amt amount.Amount) error {
	constants, err := config.GetConstants(trx)
	if nil != err {
		return err
	}
	id := history.Store(trx, from, sender, to, amt, constants.Symbol)
	globalData.log.Debugf("transfer: %d: %s -> %s  amount: %s", id, from, to, amt)
	return nil
}

// deliver the post-commit notification for Send/SendFrom
//
// the transfer is already committed; a delivery failure is logged
// and never surfaced, otherwise a caller could mistake a failed
// notification for a failed transfer and retry into a double spend
func notifyReceiver(sender *account.Account, from *account.Account, to *account.Account, amt amount.Amount, msg []byte) {
	globalData.RLock()
	notifier := globalData.notifier
	globalData.RUnlock()

	if nil == notifier {
		return
	}

	codeHash := storage.Pool.Receivers.Get(to.Bytes())
	if nil == codeHash {
		return
	}

	err := notifier.NotifyReceive(codeHash, to, &ReceiveNotification{
		Sender: *sender,
		From:   *from,
		Amount: amt,
		Msg:    msg,
	})
	if nil != err {
		globalData.log.Errorf("notify receiver: %s  error: %s", to, err)
	}
}
