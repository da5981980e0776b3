// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// a transaction must see its own uncommitted writes
func TestTransactionReadsOwnWrites(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	trx.Put(pool, []byte("pending"), []byte("value"))

	assert.Equal(t, []byte("value"), trx.Get(pool, []byte("pending")), "uncommitted write not visible")
	assert.True(t, trx.Has(pool, []byte("pending")), "uncommitted write not visible to Has")

	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	assert.Equal(t, []byte("value"), pool.Get([]byte("pending")), "committed write missing")
}

// an aborted transaction must leave no trace
func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	putAndCommit(t, pool, "kept", "original")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	trx.Put(pool, []byte("kept"), []byte("changed"))
	trx.Put(pool, []byte("extra"), []byte("data"))
	trx.Abort()

	assert.Equal(t, []byte("original"), pool.Get([]byte("kept")), "aborted write leaked")
	assert.False(t, pool.Has([]byte("extra")), "aborted write leaked")
}

// a pending delete must hide the committed value from the transaction
func TestTransactionDeleteVisibility(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	putAndCommit(t, pool, "doomed", "data")

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	trx.Delete(pool, []byte("doomed"))
	assert.Nil(t, trx.Get(pool, []byte("doomed")), "pending delete still visible")
	assert.False(t, trx.Has(pool, []byte("doomed")), "pending delete still visible to Has")

	trx.Abort()
	assert.Equal(t, []byte("data"), pool.Get([]byte("doomed")), "aborted delete was applied")
}

// only one transaction may be in progress at a time
func TestTransactionExclusive(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.TransactionInUse, err, "expected transaction in use")

	trx.Abort()

	trx, err = storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error after abort")
	trx.Abort()
}
