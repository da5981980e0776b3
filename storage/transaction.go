// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - atomic mutation across all pools
//
// writes are buffered into a single batch and only reach the
// database on Commit; reads go through the buffer so an operation
// sees its own uncommitted writes; Abort discards every buffered
// write leaving persisted state untouched
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(Handle, []byte)
	Get(Handle, []byte) []byte
	GetN(Handle, []byte) (uint64, bool)
	Has(Handle, []byte) bool
	InUse() bool
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
}

type TransactionData struct {
	access DataAccess
}

func newTransaction(access DataAccess) Transaction {
	return &TransactionData{
		access: access,
	}
}

func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

func (t *TransactionData) Put(h Handle, key []byte, value []byte) {
	h.(*PoolHandle).put(key, value)
}

func (t *TransactionData) PutN(h Handle, key []byte, value uint64) {
	h.(*PoolHandle).putN(key, value)
}

func (t *TransactionData) Delete(h Handle, key []byte) {
	h.(*PoolHandle).remove(key)
}

func (t *TransactionData) Get(h Handle, key []byte) []byte {
	return h.Get(key)
}

func (t *TransactionData) GetN(h Handle, key []byte) (uint64, bool) {
	return h.GetN(key)
}

func (t *TransactionData) Has(h Handle, key []byte) bool {
	return h.Has(key)
}

func (t *TransactionData) Commit() error {
	return t.access.Commit()
}

func (t *TransactionData) Abort() {
	t.access.Abort()
}

func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}
