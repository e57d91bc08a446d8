// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package blob

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/caarlos0/env/v11"
)

const (
	// Scheme is the URL scheme of Azure Blob Storage targets.
	Scheme = "azblob"
)

var (
	// ErrInvalidTarget reports a malformed azblob URL.
	ErrInvalidTarget = errors.New("invalid azure blob target")
)

// config holds the environment configuration needed to connect to Azure Blob Storage.
type config struct {
	ConnectionString string `env:"AZURE_STORAGE_BLOB_CONNECTION_STRING"`
	// AccountName is used when the target does not carry the account.
	AccountName string `env:"AZURE_STORAGE_BLOB_ACCOUNT_NAME"`
}

// Target identifies the blob a dump is uploaded to.
type Target struct {
	Account   string
	Container string
	Blob      string
}

// ParseTarget parses an azblob://account/container/blob URL. The account can be omitted
// (azblob:///container/blob) when it comes from the environment.
func ParseTarget(raw string) (Target, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	if parsed.Scheme != Scheme {
		return Target{}, fmt.Errorf("%w: unexpected scheme %q", ErrInvalidTarget, parsed.Scheme)
	}

	container, blob, found := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
	if !found || container == "" || blob == "" || strings.HasSuffix(blob, "/") {
		return Target{}, fmt.Errorf("%w: %q must be in the form %s://account/container/blob", ErrInvalidTarget, raw, Scheme)
	}

	return Target{
		Account:   parsed.Host,
		Container: container,
		Blob:      blob,
	}, nil
}

func (t Target) String() string {
	return fmt.Sprintf("%s://%s/%s/%s", Scheme, t.Account, t.Container, t.Blob)
}

func (t Target) serviceURL() string {
	if strings.Contains(t.Account, ".blob.core.windows.net") {
		return "https://" + t.Account + "/"
	}

	return fmt.Sprintf("https://%s.blob.core.windows.net/", t.Account)
}

func loadConfig() (config, error) {
	return env.ParseAs[config]()
}

// newClient returns a client for the storage account of target.
func (c config) newClient(target *Target) (*azblob.Client, error) {
	if c.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(c.ConnectionString, nil)
	}

	if target.Account == "" {
		target.Account = c.AccountName
	}

	if target.Account == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, "missing storage account, set it in the target or in AZURE_STORAGE_BLOB_ACCOUNT_NAME")
	}

	credentials, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}

	return azblob.NewClient(target.serviceURL(), credentials, nil)
}
