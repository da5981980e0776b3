// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history_test

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/history"
	"github.com/hushtoken/hushd/storage"
)

// test database file
const databaseFileName = "history-test.leveldb"

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

func TestPackUnpack(t *testing.T) {
	record := &history.TransferRecord{
		Id:           42,
		From:         *makeAccount(0x01),
		Sender:       *makeAccount(0x02),
		Receiver:     *makeAccount(0x03),
		Amount:       amount.FromUint64(987654321),
		Denomination: "HUSH",
	}

	unpacked, err := history.Unpack(record.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, record, unpacked, "round trip mismatch")
}

func TestUnpackTruncated(t *testing.T) {
	record := &history.TransferRecord{
		Id:           1,
		Denomination: "HUSH",
	}
	packed := record.Pack()

	_, err := history.Unpack(packed[:len(packed)-1])
	assert.NotNil(t, err, "expected unpack failure")
}

func TestStoreDistinctAccounts(t *testing.T) {
	setup(t)
	defer teardown(t)

	from := makeAccount(0x01)
	sender := makeAccount(0x02)
	receiver := makeAccount(0x03)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	id := history.Store(trx, from, sender, receiver, amount.FromUint64(100), "HUSH")
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	assert.Equal(t, uint64(1), id, "first id must be 1")

	// each distinct participant gets exactly one copy sharing the id
	for i, acct := range []*account.Account{from, sender, receiver} {
		assert.Equal(t, uint64(1), history.Count(nil, acct), "%d: wrong count", i)

		records, err := history.Page(nil, acct, 0, 10)
		assert.Nil(t, err, "%d: page error", i)
		assert.Equal(t, 1, len(records), "%d: wrong record count", i)
		assert.Equal(t, id, records[0].Id, "%d: wrong id", i)
		assert.Equal(t, *from, records[0].From, "%d: wrong from", i)
		assert.Equal(t, *sender, records[0].Sender, "%d: wrong sender", i)
		assert.Equal(t, *receiver, records[0].Receiver, "%d: wrong receiver", i)
		assert.Equal(t, "HUSH", records[0].Denomination, "%d: wrong denomination", i)
	}
}

func TestStoreCoincidingAccounts(t *testing.T) {
	setup(t)
	defer teardown(t)

	alpha := makeAccount(0x01)
	beta := makeAccount(0x02)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	// direct transfer: sender == from
	history.Store(trx, alpha, alpha, beta, amount.FromUint64(10), "HUSH")

	// self transfer: all three coincide
	history.Store(trx, alpha, alpha, alpha, amount.FromUint64(20), "HUSH")

	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	// one copy per logical transfer, never duplicates
	assert.Equal(t, uint64(2), history.Count(nil, alpha), "wrong alpha count")
	assert.Equal(t, uint64(1), history.Count(nil, beta), "wrong beta count")
}

func TestIdsIncrease(t *testing.T) {
	setup(t)
	defer teardown(t)

	alpha := makeAccount(0x01)
	beta := makeAccount(0x02)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")

	first := history.Store(trx, alpha, alpha, beta, amount.FromUint64(1), "HUSH")
	second := history.Store(trx, beta, beta, alpha, amount.FromUint64(2), "HUSH")

	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	assert.Equal(t, uint64(1), first, "wrong first id")
	assert.Equal(t, uint64(2), second, "wrong second id")
}

func TestPagination(t *testing.T) {
	setup(t)
	defer teardown(t)

	alpha := makeAccount(0x01)
	beta := makeAccount(0x02)

	const total = 25

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	for i := 1; i <= total; i += 1 {
		history.Store(trx, alpha, alpha, beta, amount.FromUint64(uint64(i)), "HUSH")
	}
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	// pages are newest first and their concatenation covers the whole
	// log exactly once
	ids := make([]uint64, 0, total)
	for page := uint64(0); page < 3; page += 1 {
		records, err := history.Page(nil, alpha, page, 10)
		assert.Nil(t, err, "page %d error", page)
		for _, record := range records {
			ids = append(ids, record.Id)
		}
	}
	assert.Equal(t, total, len(ids), "wrong total records")
	for i, id := range ids {
		assert.Equal(t, uint64(total-i), id, "%d: wrong order", i)
	}

	records, err := history.Page(nil, alpha, 0, 10)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 10, len(records), "wrong full page size")

	records, err = history.Page(nil, alpha, 2, 10)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 5, len(records), "wrong final page size")

	// past the end is empty, not an error
	records, err = history.Page(nil, alpha, 3, 10)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 0, len(records), "expected empty page")

	// zero page size is empty, not an error
	records, err = history.Page(nil, alpha, 0, 0)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 0, len(records), "expected empty page")
}

func TestPaginationHugeArguments(t *testing.T) {
	setup(t)
	defer teardown(t)

	alpha := makeAccount(0x01)
	beta := makeAccount(0x02)

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "transaction begin error")
	history.Store(trx, alpha, alpha, beta, amount.FromUint64(1), "HUSH")
	err = trx.Commit()
	assert.Nil(t, err, "transaction commit error")

	// arguments whose product wraps 64 bits must still read as past
	// the end of the log, never as an early page
	records, err := history.Page(nil, alpha, 1<<34, 1<<30)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 0, len(records), "expected empty page")

	records, err = history.Page(nil, alpha, math.MaxUint64, 2)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 0, len(records), "expected empty page")

	records, err = history.Page(nil, alpha, math.MaxUint64, math.MaxUint64)
	assert.Nil(t, err, "page error")
	assert.Equal(t, 0, len(records), "expected empty page")
}
