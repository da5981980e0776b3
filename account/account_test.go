// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/fault"
)

func makeAccount(fill byte) *account.Account {
	buffer := make([]byte, account.AccountSize)
	for i := range buffer {
		buffer[i] = fill
	}
	a, err := account.FromBytes(buffer)
	if nil != err {
		panic(err)
	}
	return a
}

func TestBase58RoundTrip(t *testing.T) {
	testData := []*account.Account{
		makeAccount(0x00),
		makeAccount(0x01),
		makeAccount(0x7f),
		makeAccount(0xff),
	}

	for i, a := range testData {
		encoded := a.String()
		decoded, err := account.AccountFromBase58(encoded)
		assert.Nil(t, err, "%d: decode error", i)
		assert.Equal(t, a, decoded, "%d: round trip mismatch", i)
	}
}

func TestDecodeErrors(t *testing.T) {
	a := makeAccount(0x42)
	encoded := a.String()

	// corrupt the checksum by flipping the final character
	last := encoded[len(encoded)-1]
	flip := byte('2')
	if last == flip {
		flip = '3'
	}
	corrupted := encoded[:len(encoded)-1] + string(flip)

	_, err := account.AccountFromBase58(corrupted)
	assert.NotNil(t, err, "expected decode failure")

	// not base58 at all
	_, err = account.AccountFromBase58("0OIl")
	assert.Equal(t, fault.CannotDecodeAccount, err, "expected cannot decode")

	// wrong length
	short := base58.Encode([]byte{0x55, 0x01, 0x02})
	_, err = account.AccountFromBase58(short)
	assert.Equal(t, fault.InvalidKeyLength, err, "expected invalid length")
}

func TestFromBytes(t *testing.T) {
	_, err := account.FromBytes([]byte{0x01, 0x02})
	assert.Equal(t, fault.InvalidKeyLength, err, "expected invalid length")

	a, err := account.FromBytes(make([]byte, account.AccountSize))
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, account.AccountSize, len(a.Bytes()), "wrong canonical length")
}

func TestTextMarshalling(t *testing.T) {
	a := makeAccount(0x99)

	text, err := a.MarshalText()
	assert.Nil(t, err, "marshal error")

	decoded := &account.Account{}
	err = decoded.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, a, decoded, "round trip mismatch")
}
