// Package journal records room narration and simulation events as
// zstd-compressed JSON lines, one file per hour.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/samber/oops"
)

// Writer appends JSON lines to hourly files named prefix-YYYY-MM-DD-HH.jsonl.zst.
type Writer struct {
	baseDir string
	prefix  string
	now     func() time.Time
	// onRotate returns the first line of every new file, or nil.
	onRotate func() any

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewWriter(baseDir, prefix string) *Writer {
	return &Writer{
		baseDir: baseDir,
		prefix:  prefix,
		now:     time.Now,
	}
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return oops.In("journal").Wrapf(err, "encode line")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}
	return w.writeLocked(b)
}

func (w *Writer) writeLocked(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return oops.In("journal").With("hour", w.curHour).Wrapf(err, "write line")
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return oops.In("journal").With("hour", w.curHour).Wrapf(err, "write line")
	}
	return w.w.Flush()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.In("journal").With("path", path).Wrapf(err, "create dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return oops.In("journal").With("path", path).Wrapf(err, "open")
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return oops.In("journal").With("path", path).Wrapf(err, "zstd")
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour

	if w.onRotate != nil {
		if head := w.onRotate(); head != nil {
			b, err := json.Marshal(head)
			if err != nil {
				return oops.In("journal").Wrapf(err, "encode header")
			}
			return w.writeLocked(b)
		}
	}
	return nil
}

func (w *Writer) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err1
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
