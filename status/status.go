// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package status - the admin controlled operating mode gate
//
// the levels are ordered from most to least permissive; every
// execute operation declares the least permissive level it still
// runs under and is rejected before any mutation when the current
// level is more restrictive than that
package status

import (
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/storage"
)

// Level - type to hold the contract status level
type Level int

// all possible levels, most permissive first
const (
	Normal Level = iota
	RestrictedButRedeemable
	Halted
	maximum
)

// key into the config pool
var keyContractStatus = []byte("contract_status")

// Valid - check a level is one of the defined values
func (level Level) Valid() bool {
	return level >= Normal && level < maximum
}

// String - current level represented as a string
func (level Level) String() string {
	switch level {
	case Normal:
		return "Normal"
	case RestrictedButRedeemable:
		return "RestrictedButRedeemable"
	case Halted:
		return "Halted"
	default:
		return "*Unknown*"
	}
}

// LevelFromString - parse a level name
func LevelFromString(name string) (Level, error) {
	switch name {
	case "Normal":
		return Normal, nil
	case "RestrictedButRedeemable":
		return RestrictedButRedeemable, nil
	case "Halted":
		return Halted, nil
	default:
		return Normal, fault.InvalidContractStatus
	}
}

// Get - the current level, Normal if never set
//
// a nil trx reads the committed state directly
func Get(trx storage.Transaction) (Level, error) {
	var buffer []byte
	if nil == trx {
		buffer = storage.Pool.Config.Get(keyContractStatus)
	} else {
		buffer = trx.Get(storage.Pool.Config, keyContractStatus)
	}
	if nil == buffer {
		return Normal, nil
	}
	if 1 != len(buffer) {
		return Normal, fault.InvalidContractStatus
	}
	level := Level(buffer[0])
	if !level.Valid() {
		return Normal, fault.InvalidContractStatus
	}
	return level, nil
}

// Set - store a new level
func Set(trx storage.Transaction, level Level) error {
	if !level.Valid() {
		return fault.InvalidContractStatus
	}
	trx.Put(storage.Pool.Config, keyContractStatus, []byte{byte(level)})
	return nil
}

// Check - reject the operation unless the current level is at least
// as permissive as the given one
func Check(trx storage.Transaction, weakest Level) error {
	current, err := Get(trx)
	if nil != err {
		return err
	}
	if current > weakest {
		return fault.ContractStatusForbidden
	}
	return nil
}

// MarshalText - level name for JSON responses
func (level Level) MarshalText() ([]byte, error) {
	return []byte(level.String()), nil
}

// UnmarshalText - parse a level name
func (level *Level) UnmarshalText(s []byte) error {
	parsed, err := LevelFromString(string(s))
	if nil != err {
		return err
	}
	*level = parsed
	return nil
}
