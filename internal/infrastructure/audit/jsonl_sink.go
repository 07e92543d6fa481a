// Package audit provides audit sink implementations backed by local files.
package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	domaudit "github.com/betfaro/engine/internal/domain/audit"
)

// JSONLSink appends one JSON object per line to a local file. Writes are
// serialized, so concurrent analyses never interleave partial lines.
type JSONLSink struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

func NewJSONLSink(path string) (*JSONLSink, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit dir %q: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file %q: %w", path, err)
	}
	return &JSONLSink{file: file}, nil
}

func (s *JSONLSink) Write(ctx context.Context, record domaudit.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := sonic.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode audit record %q: %w", record.ID, err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(payload)
	_ = buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("audit sink is closed")
	}
	if _, err := s.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append audit record %q: %w", record.ID, err)
	}
	return nil
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// NopSink discards audit records, used when auditing is disabled.
type NopSink struct{}

func (NopSink) Write(context.Context, domaudit.Record) error { return nil }

func (NopSink) Close() error { return nil }
