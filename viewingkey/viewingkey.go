// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package viewingkey - secret per account credentials gating reads
// of private data
//
// only a one way hash of a key is ever stored; the plaintext is
// returned once at creation and cannot be recovered afterwards
package viewingkey

import (
	"crypto/subtle"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/storage"
)

// key layout constants
const (
	KeySize   = 32 // bytes of derived secret
	KeyPrefix = "api_key_"
)

// Create - derive a fresh viewing key for an account
//
// the secret mixes the contract seed, the account identity, host
// supplied randomness and caller supplied entropy through Shake256;
// identical inputs give identical keys, which the replicated
// execution environment depends on
func Create(trx storage.Transaction, acct *account.Account, entropy []byte, randomness []byte) (string, error) {
	constants, err := config.GetConstants(trx)
	if nil != err {
		return "", err
	}

	shake := sha3.NewShake256()
	shake.Write(constants.Seed)
	shake.Write(acct.Bytes())
	shake.Write(randomness)
	shake.Write(entropy)

	raw := make([]byte, KeySize)
	shake.Read(raw)

	key := KeyPrefix + base58.Encode(raw)
	Set(trx, acct, key)
	return key, nil
}

// Set - store the hash of a caller chosen key, replacing any
// previous key outright
func Set(trx storage.Transaction, acct *account.Account, suppliedKey string) {
	hash := sha3.Sum256([]byte(suppliedKey))
	trx.Put(storage.Pool.ViewingKeys, acct.Bytes(), hash[:])
}

// Verify - check a supplied key against the stored hash
//
// the comparison covers the full hash length with no early exit so
// timing reveals nothing about where a mismatch occurs; an account
// with no stored key always fails, after a compare of the same cost
func Verify(acct *account.Account, suppliedKey string) bool {
	stored := storage.Pool.ViewingKeys.Get(acct.Bytes())
	supplied := sha3.Sum256([]byte(suppliedKey))

	if nil == stored {
		// burn the same comparison time as the found case
		empty := [32]byte{}
		subtle.ConstantTimeCompare(empty[:], supplied[:])
		return false
	}

	return 1 == subtle.ConstantTimeCompare(stored, supplied[:])
}
