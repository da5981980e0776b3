// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// test database file
const databaseFileName = "config-test.leveldb"

func setup(t *testing.T) {
	os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	os.RemoveAll(databaseFileName)
}

func makeAccount(fill byte) *account.Account {
	buffer := make([]byte, account.AccountSize)
	for i := range buffer {
		buffer[i] = fill
	}
	a, _ := account.FromBytes(buffer)
	return a
}

func validConstants() *config.Constants {
	return &config.Constants{
		Name:              "hush token",
		Symbol:            "HUSH",
		Decimals:          6,
		Admin:             *makeAccount(0x01),
		Seed:              []byte("initial entropy for testing"),
		PublicTotalSupply: true,
	}
}

func TestConstantsRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	stored := validConstants()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	err = config.PutConstants(trx, stored)
	assert.Nil(t, err, "put constants error")
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	fetched, err := config.GetConstants(nil)
	assert.Nil(t, err, "get constants error")
	assert.Equal(t, stored, fetched, "round trip mismatch")
}

func TestConstantsWriteOnce(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	err = config.PutConstants(trx, validConstants())
	assert.Nil(t, err, "put constants error")

	// a second store must fail, even inside the same transaction
	err = config.PutConstants(trx, validConstants())
	assert.Equal(t, fault.ConstantsAlreadyStored, err, "expected already stored")
	trx.Abort()
}

func TestConstantsMissing(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := config.GetConstants(nil)
	assert.Equal(t, fault.MissingConstants, err, "expected missing constants")
}

func TestConstantsValidation(t *testing.T) {
	setup(t)
	defer teardown(t)

	testData := []struct {
		modify func(*config.Constants)
		err    error
	}{
		{func(c *config.Constants) { c.Name = "ab" }, fault.InvalidTokenName},
		{func(c *config.Constants) { c.Symbol = "TOOLONGSYM" }, fault.InvalidTokenSymbol},
		{func(c *config.Constants) { c.Symbol = "hush" }, fault.InvalidTokenSymbol},
		{func(c *config.Constants) { c.Decimals = 19 }, fault.InvalidDecimals},
	}

	for i, item := range testData {
		constants := validConstants()
		item.modify(constants)
		assert.Equal(t, item.err, constants.Validate(), "%d: wrong validation result", i)
	}
}

func TestSetAdmin(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	err = config.PutConstants(trx, validConstants())
	assert.Nil(t, err, "put constants error")

	newAdmin := makeAccount(0x02)
	err = config.SetAdmin(trx, newAdmin)
	assert.Nil(t, err, "set admin error")
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	fetched, err := config.GetConstants(nil)
	assert.Nil(t, err, "get constants error")
	assert.Equal(t, *newAdmin, fetched.Admin, "wrong admin")
	assert.Equal(t, "hush token", fetched.Name, "name must survive admin change")
}

func TestTotalSupply(t *testing.T) {
	setup(t)
	defer teardown(t)

	supply, err := config.TotalSupply(nil)
	assert.Nil(t, err, "total supply error")
	assert.True(t, supply.IsZero(), "expected zero default")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	config.SetTotalSupply(trx, amount.FromUint64(1000))
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	supply, err = config.TotalSupply(nil)
	assert.Nil(t, err, "total supply error")
	assert.Equal(t, "1000", supply.String(), "wrong supply")
}

func TestNextTxId(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	// ids start at 1 and increase by exactly one
	assert.Equal(t, uint64(1), config.NextTxId(trx), "wrong first id")
	assert.Equal(t, uint64(2), config.NextTxId(trx), "wrong second id")
	assert.Equal(t, uint64(2), config.TxCount(trx), "wrong count")

	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	assert.Equal(t, uint64(2), config.TxCount(nil), "wrong committed count")
}
