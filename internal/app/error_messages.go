// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used by the cxf
// commands.
//
// All Msg* constants are human-readable strings printed when a command
// fails. Keeping them in one place ensures consistent wording across
// commands; UserMessage picks the one matching an error.
package app

const (
	// MsgInvalidDataProvided is printed when an input file is not a CXF
	// document at all (malformed JSON, missing required members).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgUnsupportedVersion is printed for documents or protocol messages of
	// a version this build cannot read.
	MsgUnsupportedVersion = "unsupported format version"

	// MsgInvalidDocument is printed when a document decodes but breaks the
	// semantic rules (duplicate item ids, empty identifiers, bad TOTP).
	MsgInvalidDocument = "document failed validation"

	// MsgAccountNotFound is printed when a requested account is not stored.
	MsgAccountNotFound = "account not found"

	// MsgStorageFailure is printed when the database rejects an operation.
	MsgStorageFailure = "storage error"

	MsgStorageBusy = "database is busy, try again"

	// MsgDecryptionFailed is printed when a sealed blob cannot be opened with
	// the given passphrase or identity.
	MsgDecryptionFailed = "decryption failed: wrong passphrase or identity"

	// MsgEmptyPassphrase is printed when a prompt was answered with nothing.
	MsgEmptyPassphrase = "passphrase must not be empty"

	// MsgInvalidConfiguration is printed when flags, env or the config file
	// hold unusable values.
	MsgInvalidConfiguration = "invalid configuration"

	// MsgExchangeRejected is printed when an export request cannot be
	// answered or a response does not match its request.
	MsgExchangeRejected = "credential exchange rejected"

	// MsgKeePassFailure is printed when a KeePass database cannot be read.
	MsgKeePassFailure = "cannot read KeePass database"

	// MsgInternalError is printed for failures the user cannot resolve.
	MsgInternalError = "internal error"
)
