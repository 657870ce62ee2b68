// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/jomtimer/jomtimer/lib/codec"
	"github.com/jomtimer/jomtimer/lib/timer"
)

// Compression identifies how a journal file is framed.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("journal is closed")

// CompressionForPath picks the framing from the file extension.
func CompressionForPath(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Writer appends events to a journal. Safe for concurrent use: events
// from many timers arrive on their own clock goroutines.
type Writer struct {
	logger *slog.Logger

	mu         sync.Mutex
	file       *os.File
	buffered   *bufio.Writer
	compressor io.WriteCloser
	encoder    *codec.Encoder
	count      int
	closed     bool
}

// WriterOption customizes a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger used for append failures raised from
// Listener, which has no way to return them.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// Create truncates or creates the file at path and returns a Writer
// framed according to CompressionForPath.
func Create(path string, options ...WriterOption) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}
	w, err := newWriter(file, CompressionForPath(path), options...)
	if err != nil {
		file.Close()
		return nil, err
	}
	w.file = file
	return w, nil
}

// NewWriter returns a Writer over destination. Close flushes the
// framing but does not close destination.
func NewWriter(destination io.Writer, compression Compression, options ...WriterOption) (*Writer, error) {
	return newWriter(destination, compression, options...)
}

func newWriter(destination io.Writer, compression Compression, options ...WriterOption) (*Writer, error) {
	w := &Writer{logger: slog.New(slog.DiscardHandler)}
	for _, option := range options {
		option(w)
	}

	w.buffered = bufio.NewWriter(destination)
	var sink io.Writer = w.buffered
	switch compression {
	case CompressionNone, "":
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w.buffered, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		w.compressor = encoder
		sink = encoder
	case CompressionLZ4:
		encoder := lz4.NewWriter(w.buffered)
		w.compressor = encoder
		sink = encoder
	default:
		return nil, fmt.Errorf("unsupported journal compression %q", compression)
	}
	w.encoder = codec.NewEncoder(sink)
	return w, nil
}

// Append writes one event.
func (w *Writer) Append(event timer.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := w.encoder.Encode(event); err != nil {
		return fmt.Errorf("encoding %s event for %s: %w", event.Kind, event.TimerID, err)
	}
	w.count++
	return nil
}

// Count returns how many events have been appended.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Listener returns a timer.Listener that appends every event it
// receives. Failures are logged.
func (w *Writer) Listener() timer.Listener {
	return func(event timer.Event) {
		if err := w.Append(event); err != nil {
			w.logger.Error("journal append failed", "timer", event.TimerID, "kind", event.Kind, "error", err)
		}
	}
}

// Close flushes buffered records and closes the file if the Writer
// opened it. Subsequent calls do nothing.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing compressor: %w", err))
		}
	}
	if err := w.buffered.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flushing journal: %w", err))
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing journal: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Reader reads events back from a journal.
type Reader struct {
	decoder *codec.Decoder
	closers []func() error
}

// Open opens the journal at path, detecting framing from the extension.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	r, err := NewReader(file, CompressionForPath(path))
	if err != nil {
		file.Close()
		return nil, err
	}
	r.closers = append(r.closers, file.Close)
	return r, nil
}

// NewReader returns a Reader over source. Close releases decoder state
// but does not close source.
func NewReader(source io.Reader, compression Compression) (*Reader, error) {
	r := &Reader{}
	buffered := bufio.NewReader(source)
	var stream io.Reader = buffered
	switch compression {
	case CompressionNone, "":
	case CompressionZstd:
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		r.closers = append(r.closers, func() error { decoder.Close(); return nil })
		stream = decoder
	case CompressionLZ4:
		stream = lz4.NewReader(buffered)
	default:
		return nil, fmt.Errorf("unsupported journal compression %q", compression)
	}
	r.decoder = codec.NewDecoder(stream)
	return r, nil
}

// Next decodes the next event. Returns io.EOF after the last record.
func (r *Reader) Next() (timer.Event, error) {
	var event timer.Event
	if err := r.decoder.Decode(&event); err != nil {
		if errors.Is(err, io.EOF) {
			return timer.Event{}, io.EOF
		}
		return timer.Event{}, fmt.Errorf("decoding journal record: %w", err)
	}
	return event, nil
}

// NextRaw returns the next record undecoded, for diagnostic dumps.
// Returns io.EOF after the last record.
func (r *Reader) NextRaw() (codec.RawMessage, error) {
	var raw codec.RawMessage
	if err := r.decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading journal record: %w", err)
	}
	return raw, nil
}

// All reads every remaining event.
func (r *Reader) All() ([]timer.Event, error) {
	var events []timer.Event
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Close releases the reader.
func (r *Reader) Close() error {
	var errs []error
	for index := len(r.closers) - 1; index >= 0; index-- {
		if err := r.closers[index](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
