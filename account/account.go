// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - conversion between the canonical binary account
// form used as a database key and its Base58 human readable form
//
// human readable form: Base58(variant ++ account bytes ++ checksum)
// where the checksum is the first 4 bytes of SHA3-256 over the
// preceding bytes
package account

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/hushtoken/hushd/fault"
)

// miscellaneous constants
const (
	AccountSize    = 32 // canonical bytes
	checksumLength = 4

	// variant byte prefixed to the canonical bytes before encoding
	accountVariant = 0x55
)

// Account - canonical account identifier
type Account [AccountSize]byte

// AccountFromBase58 - convert a Base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	decoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return nil, fault.CannotDecodeAccount
	}

	if 1+AccountSize+checksumLength != len(decoded) {
		return nil, fault.InvalidKeyLength
	}

	if accountVariant != decoded[0] {
		return nil, fault.CannotDecodeAccount
	}

	checksumStart := len(decoded) - checksumLength
	digest := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(digest[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ChecksumMismatch
	}

	account := &Account{}
	copy(account[:], decoded[1:checksumStart])
	return account, nil
}

// FromBytes - convert the canonical binary form to an account
func FromBytes(buffer []byte) (*Account, error) {
	if AccountSize != len(buffer) {
		return nil, fault.InvalidKeyLength
	}
	account := &Account{}
	copy(account[:], buffer)
	return account, nil
}

// Bytes - the canonical binary form used as a database key
func (account *Account) Bytes() []byte {
	return account[:]
}

// String - the Base58 human readable form
func (account Account) String() string {
	buffer := make([]byte, 0, 1+AccountSize+checksumLength)
	buffer = append(buffer, accountVariant)
	buffer = append(buffer, account[:]...)
	digest := sha3.Sum256(buffer)
	buffer = append(buffer, digest[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert a text form back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}

// GoString - support for %#v printing
func (account Account) GoString() string {
	return fmt.Sprintf("&account.Account{%q}", account.String())
}
