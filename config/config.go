// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config - persisted token configuration
//
// holds the immutable token constants written once at initialisation
// together with the two mutable counters: the total supply and the
// count of logical transfers used to assign transfer record ids
package config

import (
	"encoding/binary"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// keys into the config pool
var (
	keyConstants   = []byte("constants")
	keyTotalSupply = []byte("total_supply")
	keyTxCount     = []byte("tx-count")
)

// limits enforced on initialisation
const (
	minNameLength   = 3
	maxNameLength   = 30
	minSymbolLength = 3
	maxSymbolLength = 6
	maxDecimals     = 18
	maxSeedLength   = 0xffff
)

// Constants - the immutable token constants
//
// Admin is the only field that can change after initialisation, via
// the explicit admin transfer operation
type Constants struct {
	Name              string          `json:"name"`
	Symbol            string          `json:"symbol"`
	Decimals          uint8           `json:"decimals"`
	Admin             account.Account `json:"admin"`
	Seed              []byte          `json:"-"`
	PublicTotalSupply bool            `json:"public_total_supply"`
}

// Validate - check the constants before they are stored
func (constants *Constants) Validate() error {
	n := len(constants.Name)
	if n < minNameLength || n > maxNameLength {
		return fault.InvalidTokenName
	}
	s := len(constants.Symbol)
	if s < minSymbolLength || s > maxSymbolLength {
		return fault.InvalidTokenSymbol
	}
	for i := 0; i < s; i += 1 {
		c := constants.Symbol[i]
		if c < 'A' || c > 'Z' {
			return fault.InvalidTokenSymbol
		}
	}
	if constants.Decimals > maxDecimals {
		return fault.InvalidDecimals
	}
	if len(constants.Seed) > maxSeedLength {
		return fault.InvalidSeedLength
	}
	return nil
}

// PutConstants - store the constants record exactly once
func PutConstants(trx storage.Transaction, constants *Constants) error {
	err := constants.Validate()
	if nil != err {
		return err
	}
	if trx.Has(storage.Pool.Config, keyConstants) {
		return fault.ConstantsAlreadyStored
	}
	trx.Put(storage.Pool.Config, keyConstants, constants.pack())
	return nil
}

// SetAdmin - rewrite the constants record with a new admin account
func SetAdmin(trx storage.Transaction, newAdmin *account.Account) error {
	constants, err := GetConstants(trx)
	if nil != err {
		return err
	}
	constants.Admin = *newAdmin
	trx.Put(storage.Pool.Config, keyConstants, constants.pack())
	return nil
}

// GetConstants - read the constants record
//
// a nil trx reads the committed state directly
func GetConstants(trx storage.Transaction) (*Constants, error) {
	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.Config.Get(keyConstants)
	} else {
		buffer = trx.Get(storage.Pool.Config, keyConstants)
	}
	if nil == buffer {
		return nil, fault.MissingConstants
	}
	return unpackConstants(buffer)
}

// TotalSupply - the current total supply, zero if never set
func TotalSupply(trx storage.Transaction) (amount.Amount, error) {
	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.Config.Get(keyTotalSupply)
	} else {
		buffer = trx.Get(storage.Pool.Config, keyTotalSupply)
	}
	if nil == buffer {
		return amount.Zero, nil
	}
	supply, err := amount.FromBytes(buffer)
	if nil != err {
		return amount.Zero, fault.CorruptedConstants
	}
	return supply, nil
}

// SetTotalSupply - overwrite the total supply
func SetTotalSupply(trx storage.Transaction, supply amount.Amount) {
	trx.Put(storage.Pool.Config, keyTotalSupply, supply.Bytes())
}

// TxCount - number of logical transfers recorded so far
func TxCount(trx storage.Transaction) uint64 {
	var count uint64
	if nil == trx {
		count, _ = storage.Pool.Config.GetN(keyTxCount)
	} else {
		count, _ = trx.GetN(storage.Pool.Config, keyTxCount)
	}
	return count
}

// NextTxId - advance the global transfer counter
//
// ids start at 1 and increase by exactly one per logical transfer
func NextTxId(trx storage.Transaction) uint64 {
	id := TxCount(trx) + 1
	trx.PutN(storage.Pool.Config, keyTxCount, id)
	return id
}

// packed form:
//   2 byte BE name length ++ name
//   1 byte symbol length  ++ symbol
//   1 byte decimals
//   32 byte admin
//   2 byte BE seed length ++ seed
//   1 byte supply visibility flag
func (constants *Constants) pack() []byte {
	buffer := make([]byte, 0, 2+len(constants.Name)+1+len(constants.Symbol)+1+account.AccountSize+2+len(constants.Seed)+1)

	nameLength := make([]byte, 2)
	binary.BigEndian.PutUint16(nameLength, uint16(len(constants.Name)))
	buffer = append(buffer, nameLength...)
	buffer = append(buffer, constants.Name...)

	buffer = append(buffer, byte(len(constants.Symbol)))
	buffer = append(buffer, constants.Symbol...)

	buffer = append(buffer, constants.Decimals)
	buffer = append(buffer, constants.Admin[:]...)

	seedLength := make([]byte, 2)
	binary.BigEndian.PutUint16(seedLength, uint16(len(constants.Seed)))
	buffer = append(buffer, seedLength...)
	buffer = append(buffer, constants.Seed...)

	visibility := byte(0x00)
	if constants.PublicTotalSupply {
		visibility = 0x01
	}
	buffer = append(buffer, visibility)

	return buffer
}

func unpackConstants(buffer []byte) (*Constants, error) {
	constants := &Constants{}

	if len(buffer) < 2 {
		return nil, fault.CorruptedConstants
	}
	n := int(binary.BigEndian.Uint16(buffer))
	buffer = buffer[2:]
	if len(buffer) < n+1 {
		return nil, fault.CorruptedConstants
	}
	constants.Name = string(buffer[:n])
	buffer = buffer[n:]

	s := int(buffer[0])
	buffer = buffer[1:]
	if len(buffer) < s+1+account.AccountSize+2 {
		return nil, fault.CorruptedConstants
	}
	constants.Symbol = string(buffer[:s])
	buffer = buffer[s:]

	constants.Decimals = buffer[0]
	buffer = buffer[1:]

	copy(constants.Admin[:], buffer[:account.AccountSize])
	buffer = buffer[account.AccountSize:]

	k := int(binary.BigEndian.Uint16(buffer))
	buffer = buffer[2:]
	if len(buffer) != k+1 {
		return nil, fault.CorruptedConstants
	}
	constants.Seed = append([]byte(nil), buffer[:k]...)
	buffer = buffer[k:]

	switch buffer[0] {
	case 0x00:
		constants.PublicTotalSupply = false
	case 0x01:
		constants.PublicTotalSupply = true
	default:
		return nil, fault.CorruptedConstants
	}

	return constants, nil
}
