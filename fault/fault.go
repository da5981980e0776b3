// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Hushtoken Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AllowanceExpired        = InvalidError("allowance expired")
	AlreadyInitialised      = ExistsError("already initialised")
	AmountOverflow          = InvalidError("amount overflow")
	AmountUnderflow         = InvalidError("amount underflow")
	CannotDecodeAccount     = RecordError("cannot decode account")
	ChecksumMismatch        = ProcessError("checksum mismatch")
	ConstantsAlreadyStored  = ExistsError("constants already stored")
	ContractStatusForbidden = InvalidError("operation forbidden by contract status")
	CorruptedAllowance      = RecordError("corrupted allowance record")
	CorruptedConstants      = RecordError("corrupted constants record")
	CorruptedTransferRecord = RecordError("corrupted transfer record")
	InsufficientAllowance   = InvalidError("insufficient allowance")
	InsufficientFunds       = InvalidError("insufficient funds")
	InvalidAmount           = InvalidError("invalid amount")
	InvalidContractStatus   = InvalidError("invalid contract status")
	InvalidCount            = InvalidError("invalid count")
	InvalidCursor           = InvalidError("invalid cursor")
	InvalidDecimals         = InvalidError("invalid decimals")
	InvalidKeyLength        = LengthError("invalid key length")
	InvalidSeedLength       = LengthError("invalid seed length")
	InvalidTokenName        = InvalidError("invalid token name")
	InvalidTokenSymbol      = InvalidError("invalid token symbol")
	MissingConstants        = NotFoundError("missing constants record")
	NotInitialised          = NotFoundError("not initialised")
	TransactionInUse        = ExistsError("transaction in use")
	Unauthorized            = InvalidError("unauthorized")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
