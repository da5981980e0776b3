// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/hushtoken/hushd/account"
	"github.com/hushtoken/hushd/amount"
	"github.com/hushtoken/hushd/config"
	"github.com/hushtoken/hushd/fault"
	"github.com/hushtoken/hushd/status"
	"github.com/hushtoken/hushd/storage"
	"github.com/hushtoken/hushd/token"
)

// administration commands executed against the local database
func processDataCommand(log *logger.L, arguments []string) error {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {

	case "init":
		if len(arguments) < 4 {
			return fault.InvalidCount
		}
		decimals, err := strconv.ParseUint(arguments[2], 10, 8)
		if nil != err {
			return fault.InvalidDecimals
		}
		admin, err := account.AccountFromBase58(arguments[3])
		if nil != err {
			return err
		}

		initialSupply := amount.Zero
		if len(arguments) >= 5 {
			initialSupply, err = amount.Parse(arguments[4])
			if nil != err {
				return err
			}
		}
		publicSupply := len(arguments) >= 6 && "public" == arguments[5]

		seed := make([]byte, 32)
		err = readEntropy(seed)
		if nil != err {
			return err
		}

		constants := &config.Constants{
			Name:              arguments[0],
			Symbol:            arguments[1],
			Decimals:          uint8(decimals),
			Admin:             *admin,
			Seed:              seed,
			PublicTotalSupply: publicSupply,
		}

		err = token.InitialiseToken(constants, initialSupply)
		if nil != err {
			return err
		}
		log.Infof("initialised token: %s (%s)", constants.Name, constants.Symbol)
		fmt.Printf("initialised: %s (%s)  supply: %s  admin: %s\n", constants.Name, constants.Symbol, initialSupply, admin)
		return nil

	case "info":
		info, err := token.TokenInfo()
		if nil != err {
			return err
		}
		out, err := json.MarshalIndent(info, "", "  ")
		if nil != err {
			return err
		}
		fmt.Printf("%s\n", out)
		return nil

	case "status":
		level, err := token.ContractStatus()
		if nil != err {
			return err
		}
		fmt.Printf("%s\n", level)
		return nil

	case "set-status":
		if 2 != len(arguments) {
			return fault.InvalidCount
		}
		admin, err := account.AccountFromBase58(arguments[0])
		if nil != err {
			return err
		}
		level, err := status.LevelFromString(arguments[1])
		if nil != err {
			return err
		}
		err = token.SetContractStatus(admin, level)
		if nil != err {
			return err
		}
		fmt.Printf("status: %s\n", level)
		return nil

	case "audit":
		return auditSupply()

	case "version":
		fmt.Printf("%s\n", version)
		return nil

	default:
		return fmt.Errorf("unknown command: %q", command)
	}
}

// verify that the sum of all balances matches the stored total
// supply, walking the whole balances pool
func auditSupply() error {

	sum := amount.Zero
	accounts := 0

	err := storage.Pool.Balances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		balance, err := amount.FromBytes(value)
		if nil != err {
			return fmt.Errorf("corrupt balance record for: %x", key)
		}
		sum, err = sum.Add(balance)
		if nil != err {
			return err
		}
		accounts += 1
		return nil
	})
	if nil != err {
		return err
	}

	supply, err := config.TotalSupply(nil)
	if nil != err {
		return err
	}

	if 0 != sum.Cmp(supply) {
		return fmt.Errorf("supply mismatch: balances: %s  total supply: %s", sum, supply)
	}

	fmt.Printf("ok: %d accounts  supply: %s\n", accounts, supply)
	return nil
}

// fill a buffer from the system entropy source
//
// only used when initialising the token seed material; all later
// key derivation is deterministic from stored state
func readEntropy(buffer []byte) error {
	_, err := rand.Read(buffer)
	return err
}
