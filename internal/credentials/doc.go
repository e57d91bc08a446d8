// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package credentials completes the database credentials by asking the user for the missing ones.
package credentials
