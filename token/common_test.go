// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/storage"
	"github.com/hushtoken/hushd/token"
)

const (
	testingDirName   = "testing"
	databaseFileName = "token-test.leveldb"
)

// notifier that records every delivery for later inspection and can
// be made to fail a delivery
type testNotifier struct {
	codeHashes    [][]byte
	receivers     []account.Account
	notifications []token.ReceiveNotification
	fail          error
}

func (n *testNotifier) NotifyReceive(codeHash []byte, receiver *account.Account, notification *token.ReceiveNotification) error {
	n.codeHashes = append(n.codeHashes, codeHash)
	n.receivers = append(n.receivers, *receiver)
	n.notifications = append(n.notifications, *notification)
	return n.fail
}

var notifier *testNotifier

func removeFiles() {
	os.RemoveAll(testingDirName)
	os.RemoveAll(databaseFileName)
}

func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	notifier = &testNotifier{}
	err = token.Initialise(notifier)
	if nil != err {
		t.Fatalf("token initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	token.Finalise()
	storage.Finalise()
	removeFiles()
}

func makeAccount(fill byte) *account.Account {
	buffer := make([]byte, account.AccountSize)
	for i := range buffer {
		buffer[i] = fill
	}
	a, _ := account.FromBytes(buffer)
	return a
}

var admin = makeAccount(0xad)

// store the standard test token with an initial supply on the admin
func initialiseToken(t *testing.T, initialSupply uint64) {
	err := token.InitialiseToken(&config.Constants{
		Name:              "hush token",
		Symbol:            "HUSH",
		Decimals:          6,
		Admin:             *admin,
		Seed:              []byte("fixed seed for operation tests"),
		PublicTotalSupply: true,
	}, amount.FromUint64(initialSupply))
	if nil != err {
		t.Fatalf("initialise token error: %s", err)
	}
}

// viewing keys for accounts that need gated queries in a test
func setKey(t *testing.T, acct *account.Account, key string) {
	err := token.SetViewingKey(acct, key)
	if nil != err {
		t.Fatalf("set viewing key error: %s", err)
	}
}
