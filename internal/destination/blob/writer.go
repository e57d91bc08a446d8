// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	sdkblob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/Dooptroop/database-janitor/internal/logger"
)

const (
	loggerName = "janitor:destination:blob"

	contentType = "application/sql"
)

// uploader is the subset of *azblob.Client used to stream the dump.
type uploader interface {
	UploadStream(ctx context.Context, containerName, blobName string, body io.Reader, o *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error)
}

// Writer uploads everything written to it as a single block blob.
// The blob is committed only when Close succeeds.
type Writer struct {
	target Target
	pipe   *io.PipeWriter
	done   chan error

	once sync.Once
	err  error
}

// Open parses target and starts the upload to it.
func Open(ctx context.Context, rawTarget string) (*Writer, error) {
	target, err := ParseTarget(rawTarget)
	if err != nil {
		return nil, err
	}

	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := config.newClient(&target)
	if err != nil {
		return nil, err
	}

	return newWriter(ctx, client, target), nil
}

func newWriter(ctx context.Context, client uploader, target Target) *Writer {
	log := logger.FromContext(ctx).WithName(loggerName)
	reader, pipe := io.Pipe()

	writer := &Writer{
		target: target,
		pipe:   pipe,
		done:   make(chan error, 1),
	}

	go func() {
		log.Debug("starting blob upload", "container", target.Container, "blob", target.Blob)
		_, err := client.UploadStream(ctx, target.Container, target.Blob, reader, &azblob.UploadStreamOptions{
			HTTPHeaders: &sdkblob.HTTPHeaders{
				BlobContentType: to.Ptr(contentType),
			},
		})

		// unblock any pending Write if the upload stopped reading early
		reader.CloseWithError(err)
		if err == nil {
			log.Debug("blob upload completed", "container", target.Container, "blob", target.Blob)
		}
		writer.done <- err
	}()

	return writer
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.pipe.Write(p)
	if err != nil {
		return n, fmt.Errorf("uploading to %s: %w", w.target, err)
	}

	return n, nil
}

// Close signals the end of the stream and waits for the upload to be committed.
func (w *Writer) Close() error {
	return w.finish(nil)
}

// Abort stops the upload, the blob is left uncommitted.
func (w *Writer) Abort(cause error) error {
	if cause == nil {
		cause = errAborted
	}

	// the upload is expected to fail once its stream is broken
	_ = w.finish(cause)
	return nil
}

var errAborted = errors.New("upload aborted")

func (w *Writer) finish(cause error) error {
	w.once.Do(func() {
		_ = w.pipe.CloseWithError(cause)
		if err := <-w.done; err != nil {
			w.err = fmt.Errorf("uploading to %s: %w", w.target, err)
		}
	})

	return w.err
}
