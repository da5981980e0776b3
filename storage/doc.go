// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++        = concatenation of byte data
// 3. account   = canonical account (32 byte value)
// 4. count     = successive index value as big endian uint64 (8 bytes)
// 5. amount    = big endian uint128 (16 bytes)
// 6. *others*  = byte values of various length
//
// Config:
//
//   C ++ "constants"       - packed immutable token constants
//   C ++ "total_supply"    - amount
//   C ++ "contract_status" - single status byte
//   C ++ "tx-count"        - count of logical transfers so far
//
// Ledger:
//
//   B ++ account           - amount held by the account
//
// Allowances:
//
//   A ++ owner ++ spender  - packed allowance (amount ++ expiration)
//
// Transfer history:
//
//   N ++ account           - next count value to use for appending to the account log
//   T ++ account ++ count  - packed transfer record
//
// Viewing keys:
//
//   K ++ account           - hash of the currently active viewing key
//
// Receivers:
//
//   R ++ account           - registered receiver code hash
//
// Testing:
//
//   Z ++ key               - testing data
package storage
