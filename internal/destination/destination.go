// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Dooptroop/database-janitor/internal/destination/blob"
	"github.com/Dooptroop/database-janitor/internal/destination/writer"
	"github.com/Dooptroop/database-janitor/internal/logger"
)

var (
	// ErrDestination is the sentinel error for all destination errors.
	ErrDestination = errors.New("destination")
)

const (
	loggerName = "janitor:destination"

	// StdoutTarget selects the standard output as destination.
	StdoutTarget = "-"
)

// Destination is where a dump is written.
type Destination interface {
	io.WriteCloser

	// Abort releases the destination discarding what has been written so far when possible.
	Abort(cause error) error
}

// Options tune how the dump is written.
type Options struct {
	// Gzip compresses the stream before writing it.
	Gzip bool
	// Stdout replaces os.Stdout as the standard output target.
	Stdout io.Writer
}

// Open returns the Destination identified by target: an empty string or "-" for the standard
// output, an azblob://account/container/blob URL for Azure Blob Storage, a file path otherwise.
func Open(ctx context.Context, target string, options Options) (Destination, error) {
	log := logger.FromContext(ctx).WithName(loggerName)

	var destination Destination
	switch {
	case target == "" || target == StdoutTarget:
		log.Debug("writing dump to standard output")
		var stdout io.Writer = os.Stdout
		if options.Stdout != nil {
			stdout = options.Stdout
		}
		destination = writer.NewStdout(stdout)
	case strings.HasPrefix(target, blob.Scheme+"://"):
		log.Debug("writing dump to azure blob storage", "target", target)
		blobWriter, err := blob.Open(ctx, target)
		if err != nil {
			return nil, handleError(err)
		}
		destination = blobWriter
	default:
		log.Debug("writing dump to file", "path", target)
		file, err := writer.NewFile(target)
		if err != nil {
			return nil, handleError(err)
		}
		destination = file
	}

	if options.Gzip {
		return newGzipDestination(destination), nil
	}

	return destination, nil
}

func handleError(err error) error {
	return fmt.Errorf("%w: %w", ErrDestination, err)
}

// gzipDestination compresses everything written before handing it to the wrapped Destination.
type gzipDestination struct {
	gzip  *gzip.Writer
	inner Destination
}

func newGzipDestination(inner Destination) *gzipDestination {
	return &gzipDestination{
		gzip:  gzip.NewWriter(inner),
		inner: inner,
	}
}

func (d *gzipDestination) Write(p []byte) (int, error) {
	return d.gzip.Write(p)
}

func (d *gzipDestination) Close() error {
	if err := d.gzip.Close(); err != nil {
		return errors.Join(handleError(err), d.inner.Abort(err))
	}

	return d.inner.Close()
}

func (d *gzipDestination) Abort(cause error) error {
	return d.inner.Abort(cause)
}
