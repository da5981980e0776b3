// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - the operation layer
//
// every execute operation runs as: check contract status, mutate the
// ledger/allowance/config pools, append history, commit - all inside
// one storage transaction so an error at any step leaves persisted
// state untouched; queries verify the viewing key then read without
// mutating anything
package token

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/ledger"
	"github.com/hushtoken/hushd/status"
	"github.com/hushtoken/hushd/storage"
)

// ReceiveNotification - payload delivered to a registered receiver
// after a Send or SendFrom
type ReceiveNotification struct {
	Sender account.Account `json:"sender"`
	From   account.Account `json:"from"`
	Amount amount.Amount   `json:"amount"`
	Msg    []byte          `json:"msg,omitempty"`
}

// Notifier - collaborator that delivers receive notifications
//
// delivery happens after the transfer has committed; a delivery
// failure is logged, it does not undo the transfer and is not
// reported to the sending caller
type Notifier interface {
	NotifyReceive(codeHash []byte, receiver *account.Account, notification *ReceiveNotification) error
}

var globalData struct {
	sync.RWMutex
	log         *logger.L
	notifier    Notifier
	initialised bool
}

// Initialise - set up the operation layer
//
// notifier may be nil when the host provides no receiver callback
// mechanism
func Initialise(notifier Notifier) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("token")
	globalData.log.Info("starting…")

	globalData.notifier = notifier
	globalData.initialised = true

	return nil
}

// Finalise - shut down the operation layer
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.notifier = nil
	globalData.initialised = false

	return nil
}

// InitialiseToken - write the constants and optional initial supply
//
// the initial supply goes to the admin account with no history
// records; the constants can only ever be stored once
func InitialiseToken(constants *config.Constants, initialSupply amount.Amount) error {
	return inTransaction(func(trx storage.Transaction) error {
		err := config.PutConstants(trx, constants)
		if nil != err {
			return err
		}
		err = status.Set(trx, status.Normal)
		if nil != err {
			return err
		}
		if !initialSupply.IsZero() {
			return ledger.Mint(trx, &constants.Admin, initialSupply)
		}
		return nil
	})
}

// run one execute operation atomically
func inTransaction(f func(trx storage.Transaction) error) error {
	globalData.RLock()
	initialised := globalData.initialised
	globalData.RUnlock()
	if !initialised {
		return fault.NotInitialised
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// caller must be the stored admin account
func checkAdmin(trx storage.Transaction, caller *account.Account) error {
	constants, err := config.GetConstants(trx)
	if nil != err {
		return err
	}
	if *caller != constants.Admin {
		return fault.Unauthorized
	}
	return nil
}
