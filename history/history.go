// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - per account append-only transfer log
//
// one logical transfer is written at most once to each involved
// account's log; the record id comes from a single global counter so
// the copies share one id regardless of how many are written
package history

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// TransferRecord - one stored transfer
//
// From is the account debited, Sender the initiator; they differ
// under a delegated transfer
type TransferRecord struct {
	Id           uint64          `json:"id,string"`
	From         account.Account `json:"from"`
	Sender       account.Account `json:"sender"`
	Receiver     account.Account `json:"receiver"`
	Amount       amount.Amount   `json:"amount"`
	Denomination string          `json:"denomination"`
}

const uint64ByteSize = 8

// fixed prefix before the variable length denomination
const fixedPackedSize = uint64ByteSize + 3*account.AccountSize + amount.ByteSize

// Pack - binary form for the transfers pool
func (record *TransferRecord) Pack() []byte {
	buffer := make([]byte, 0, fixedPackedSize+1+len(record.Denomination))

	id := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(id, record.Id)
	buffer = append(buffer, id...)

	buffer = append(buffer, record.From[:]...)
	buffer = append(buffer, record.Sender[:]...)
	buffer = append(buffer, record.Receiver[:]...)
	buffer = append(buffer, record.Amount.Bytes()...)

	buffer = append(buffer, byte(len(record.Denomination)))
	buffer = append(buffer, record.Denomination...)

	return buffer
}

// Unpack - decode the binary form
func Unpack(buffer []byte) (*TransferRecord, error) {
	if len(buffer) < fixedPackedSize+1 {
		return nil, fault.CorruptedTransferRecord
	}

	record := &TransferRecord{}
	record.Id = binary.BigEndian.Uint64(buffer[:uint64ByteSize])
	buffer = buffer[uint64ByteSize:]

	copy(record.From[:], buffer[:account.AccountSize])
	buffer = buffer[account.AccountSize:]
	copy(record.Sender[:], buffer[:account.AccountSize])
	buffer = buffer[account.AccountSize:]
	copy(record.Receiver[:], buffer[:account.AccountSize])
	buffer = buffer[account.AccountSize:]

	amt, err := amount.FromBytes(buffer[:amount.ByteSize])
	if nil != err {
		return nil, fault.CorruptedTransferRecord
	}
	record.Amount = amt
	buffer = buffer[amount.ByteSize:]

	n := int(buffer[0])
	buffer = buffer[1:]
	if len(buffer) != n {
		return nil, fault.CorruptedTransferRecord
	}
	record.Denomination = string(buffer)

	return record, nil
}

// Store - record one logical transfer
//
// the record is appended to each distinct account among from, sender
// and receiver; accounts that coincide get only one copy, which
// keeps per account pagination free of duplicates
func Store(trx storage.Transaction, from *account.Account, sender *account.Account, receiver *account.Account, amt amount.Amount, denomination string) uint64 {

	record := TransferRecord{
		Id:           config.NextTxId(trx),
		From:         *from,
		Sender:       *sender,
		Receiver:     *receiver,
		Amount:       amt,
		Denomination: denomination,
	}
	packed := record.Pack()

	appendRecord(trx, from, packed)
	if *sender != *from {
		appendRecord(trx, sender, packed)
	}
	if *receiver != *from && *receiver != *sender {
		appendRecord(trx, receiver, packed)
	}

	return record.Id
}

// append one packed record to an account's log
func appendRecord(trx storage.Transaction, acct *account.Account, packed []byte) {
	count, _ := trx.GetN(storage.Pool.TransferCount, acct.Bytes())

	key := make([]byte, 0, account.AccountSize+uint64ByteSize)
	key = append(key, acct.Bytes()...)
	index := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(index, count)
	key = append(key, index...)

	trx.Put(storage.Pool.Transfers, key, packed)
	trx.PutN(storage.Pool.TransferCount, acct.Bytes(), count+1)
}

// Count - number of records in an account's log
//
// a nil trx reads the committed state directly
func Count(trx storage.Transaction, acct *account.Account) uint64 {
	var count uint64
	if nil == trx {
		count, _ = storage.Pool.TransferCount.GetN(acct.Bytes())
	} else {
		count, _ = trx.GetN(storage.Pool.TransferCount, acct.Bytes())
	}
	return count
}

// Page - read one page of an account's log, most recent first
//
// page zero holds the newest records; a page past the end of the
// log yields an empty list, not an error
func Page(trx storage.Transaction, acct *account.Account, page uint64, pageSize uint64) ([]TransferRecord, error) {

	count := Count(trx, acct)

	// page * pageSize wraps for huge arguments; any page whose first
	// index would be at or past the end of the log is empty, so
	// reject before multiplying
	if 0 == pageSize || page > count/pageSize {
		return []TransferRecord{}, nil
	}

	skip := page * pageSize
	if skip >= count {
		return []TransferRecord{}, nil
	}

	top := count - skip // exclusive upper bound, newest requested record + 1
	n := pageSize
	if top < n {
		n = top
	}

	records := make([]TransferRecord, 0, n)
	key := make([]byte, account.AccountSize+uint64ByteSize)
	copy(key, acct.Bytes())

	for i := uint64(0); i < n; i += 1 {
		binary.BigEndian.PutUint64(key[account.AccountSize:], top-1-i)

		var buffer []byte
		if nil == trx {
			buffer = storage.Pool.Transfers.Get(key)
		} else {
			buffer = trx.Get(storage.Pool.Transfers, key)
		}
		if nil == buffer {
			logger.Panicf("history.Page: missing record for: %x", key)
		}
		record, err := Unpack(buffer)
		if nil != err {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}
