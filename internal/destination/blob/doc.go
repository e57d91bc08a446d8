// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package blob streams a dump to an Azure Blob Storage block blob.
//
// Targets are written as azblob://account/container/path/to/blob. Credentials are taken from
// the AZURE_STORAGE_BLOB_CONNECTION_STRING environment variable when present, or from the
// default Azure credential chain otherwise.
package blob
