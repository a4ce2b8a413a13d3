// Package file provides the file-based persistence backend.
//
// Directory layout:
//   - mapping: key-to-chunk mapping, full overwrite at each snapshot
//   - <chunk-id>: one file per chunk, full overwrite at each flush
//   - oplog: append-only operation log, truncated after snapshots
//   - .lock: exclusive lock against a second process opening the store
//
// Mapping and chunk files carry a 4-byte format header followed by a
// msgpack record list, optionally zstd-compressed (header flag). Full-file
// writes go through temp-file-then-rename for atomicity.
package file

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"cellstore/internal/format"
	"cellstore/internal/logging"
	"cellstore/internal/store"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	mappingFileName = "mapping"
	oplogFileName   = "oplog"
	lockFileName    = ".lock"

	mappingVersion = 0x01
	chunkVersion   = 0x01
	oplogVersion   = 0x01
)

// CompressionType selects the compression algorithm for mapping and chunk
// file payloads.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionZstd
)

var (
	ErrMissingDir      = errors.New("file backend dir is required")
	ErrBackendClosed   = errors.New("backend is closed")
	ErrDirectoryLocked = errors.New("store directory is locked by another process")
)

// zstdDec is a package-level decoder, concurrent-safe, always available so
// compressed files written by a previous run remain readable after
// compression is disabled.
var zstdDec *zstd.Decoder

func init() {
	var err error
	zstdDec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic("zstd: init decoder: " + err.Error())
	}
}

type Config struct {
	Dir      string
	FileMode os.FileMode

	// Compression selects the compression algorithm for mapping and chunk
	// file payloads. Defaults to CompressionNone.
	Compression CompressionType

	// Logger for structured logging. If nil, logging is disabled.
	// The backend scopes this logger with component="backend".
	Logger *slog.Logger
}

// Backend is the file-based store.Backend implementation. It owns the store
// directory exclusively (flock) and keeps the operation log open for the
// lifetime of the backend.
type Backend struct {
	mu       sync.Mutex
	cfg      Config
	lockFile *os.File
	oplog    *os.File
	logEnd   int64 // current append offset in the oplog
	zstdEnc  *zstd.Encoder
	closed   bool
	logger   *slog.Logger
}

func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Dir == "" {
		return nil, ErrMissingDir
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = os.FileMode(0o644)
	}

	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, err
	}

	logger := logging.Default(cfg.Logger).With("component", "backend", "type", "file")

	lockPath := filepath.Join(cfg.Dir, lockFileName)
	lockFile, err := os.OpenFile(filepath.Clean(lockPath), os.O_CREATE|os.O_RDWR, cfg.FileMode)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("%w: %s", ErrDirectoryLocked, cfg.Dir)
	}

	var zstdEnc *zstd.Encoder
	if cfg.Compression == CompressionZstd {
		zstdEnc, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			_ = lockFile.Close()
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
	}

	b := &Backend{
		cfg:      cfg,
		lockFile: lockFile,
		zstdEnc:  zstdEnc,
		logger:   logger,
	}

	b.cleanOrphanTempFiles()

	if err := b.openOplog(); err != nil {
		_ = lockFile.Close()
		if zstdEnc != nil {
			_ = zstdEnc.Close()
		}
		return nil, err
	}

	return b, nil
}

// openOplog opens the operation log, writing the file header when the log
// is brand new and validating it otherwise.
func (b *Backend) openOplog() error {
	path := filepath.Join(b.cfg.Dir, oplogFileName)
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_RDWR, b.cfg.FileMode)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	if info.Size() < format.HeaderSize {
		header := format.Header{Type: format.TypeOpLog, Version: oplogVersion}
		headerBytes := header.Encode()
		if err := f.Truncate(0); err != nil {
			_ = f.Close()
			return err
		}
		if _, err := f.WriteAt(headerBytes[:], 0); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		b.oplog = f
		b.logEnd = format.HeaderSize
		return nil
	}

	var headerBuf [format.HeaderSize]byte
	if _, err := f.ReadAt(headerBuf[:], 0); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := format.DecodeAndValidate(headerBuf[:], format.TypeOpLog, oplogVersion); err != nil {
		_ = f.Close()
		return fmt.Errorf("oplog header: %w", err)
	}

	b.oplog = f
	b.logEnd = info.Size()
	return nil
}

// cleanOrphanTempFiles removes leftover temp files from crashed full-file
// writes. Best-effort: errors are logged but not returned.
func (b *Backend) cleanOrphanTempFiles() {
	entries, err := os.ReadDir(b.cfg.Dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		path := filepath.Join(b.cfg.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			b.logger.Warn("failed to remove orphan temp file", "path", path, "error", err)
		} else {
			b.logger.Info("removed orphan temp file", "path", path)
		}
	}
}

// LoadMapping reads the persisted key-to-chunk mapping. A store with no
// mapping file yet returns an empty map.
func (b *Backend) LoadMapping() (store.CellMap, error) {
	recs, err := b.readRecordsFile(b.mappingPath(), format.TypeMapping, mappingVersion)
	if err != nil {
		return nil, err
	}
	m := make(store.CellMap, len(recs))
	for _, rec := range recs {
		m.Set(rec.Row, rec.Col, rec.Val)
	}
	return m, nil
}

// WriteMapping atomically overwrites the mapping file.
func (b *Backend) WriteMapping(m store.CellMap) error {
	return b.writeRecordsFile(b.mappingPath(), format.TypeMapping, mappingVersion, m)
}

// NewChunkID allocates a fresh chunk ID. UUIDv7 embeds a millisecond
// timestamp, so IDs are unique and time-ordered for the store's lifetime.
func (b *Backend) NewChunkID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ReadChunk merges the chunk's cells into dst. A chunk with no file reads
// as empty: its cells live in the operation log until the next snapshot.
// Cells already present in dst are never replaced.
func (b *Backend) ReadChunk(id string, dst store.CellMap) error {
	recs, err := b.readRecordsFile(b.chunkPath(id), format.TypeChunk, chunkVersion)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, ok := dst.Get(rec.Row, rec.Col); !ok {
			dst.Set(rec.Row, rec.Col, rec.Val)
		}
	}
	return nil
}

// WriteChunk atomically overwrites the chunk file.
func (b *Backend) WriteChunk(id string, cells store.CellMap) error {
	return b.writeRecordsFile(b.chunkPath(id), format.TypeChunk, chunkVersion, cells)
}

// RemoveChunk deletes the chunk file. A chunk that never got a file is not
// an error.
func (b *Backend) RemoveChunk(id string) error {
	err := os.Remove(b.chunkPath(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AppendLog appends one record to the operation log and syncs it before
// returning.
func (b *Backend) AppendLog(op store.Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}

	buf, err := encodeLogRecord(op)
	if err != nil {
		return err
	}
	if _, err := b.oplog.WriteAt(buf, b.logEnd); err != nil {
		return err
	}
	if err := b.oplog.Sync(); err != nil {
		return err
	}
	b.logEnd += int64(len(buf))
	return nil
}

// ClearLog truncates the operation log back to its header.
func (b *Backend) ClearLog() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}

	if err := b.oplog.Truncate(format.HeaderSize); err != nil {
		return err
	}
	if err := b.oplog.Sync(); err != nil {
		return err
	}
	b.logEnd = format.HeaderSize
	return nil
}

// Replay reads operation log records in append order and invokes apply for
// each. A torn trailing record (bytes missing at the end of the file) is
// truncated away; an intact record that fails validation is corruption and
// fails replay.
func (b *Backend) Replay(apply func(store.Op) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBackendClosed
	}

	if b.logEnd <= format.HeaderSize {
		return nil
	}
	data := make([]byte, b.logEnd-format.HeaderSize)
	if _, err := b.oplog.ReadAt(data, format.HeaderSize); err != nil {
		return err
	}

	offset := 0
	for offset < len(data) {
		remaining := data[offset:]
		if len(remaining) < sizeFieldBytes {
			return b.truncateTailLocked(offset)
		}
		size := binary.LittleEndian.Uint32(remaining[:sizeFieldBytes])
		if size < minLogRecordSize || size > maxLogRecordSize {
			return fmt.Errorf("oplog record at offset %d: %w", offset, ErrLogSizeMismatch)
		}
		if uint32(len(remaining)) < size {
			return b.truncateTailLocked(offset)
		}

		op, err := decodeLogRecord(remaining[:size])
		if err != nil {
			return fmt.Errorf("oplog record at offset %d: %w", offset, err)
		}
		if err := apply(op); err != nil {
			return err
		}
		offset += int(size)
	}
	return nil
}

// truncateTailLocked discards a torn trailing record at the given offset
// into the log's data section.
func (b *Backend) truncateTailLocked(offset int) error {
	end := int64(format.HeaderSize + offset)
	b.logger.Warn("discarding torn oplog tail",
		"offset", end,
		"bytes", b.logEnd-end,
	)
	if err := b.oplog.Truncate(end); err != nil {
		return err
	}
	if err := b.oplog.Sync(); err != nil {
		return err
	}
	b.logEnd = end
	return nil
}

// Close releases the operation log, the directory lock, and the encoder.
// After Close, the backend must not be used.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.oplog.Close(); err != nil {
		errs = append(errs, err)
	}
	if b.zstdEnc != nil {
		if err := b.zstdEnc.Close(); err != nil {
			errs = append(errs, err)
		}
		b.zstdEnc = nil
	}
	if err := b.lockFile.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// cellRecord is the msgpack row format shared by mapping and chunk files.
// For the mapping file, Val carries the chunk ID.
type cellRecord struct {
	Row string `msgpack:"row"`
	Col string `msgpack:"col"`
	Val string `msgpack:"val"`
}

// encodeRecords flattens a CellMap into a sorted record list for
// deterministic file contents.
func encodeRecords(m store.CellMap) []cellRecord {
	recs := make([]cellRecord, 0, m.Len())
	for row, cols := range m {
		for col, val := range cols {
			recs = append(recs, cellRecord{Row: row, Col: col, Val: val})
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Row != recs[j].Row {
			return recs[i].Row < recs[j].Row
		}
		return recs[i].Col < recs[j].Col
	})
	return recs
}

// writeRecordsFile serializes a CellMap and atomically replaces the target
// file via temp-file-then-rename.
func (b *Backend) writeRecordsFile(path string, typ byte, version byte, m store.CellMap) error {
	payload, err := msgpack.Marshal(encodeRecords(m))
	if err != nil {
		return err
	}

	var flags byte
	if b.zstdEnc != nil {
		payload = b.zstdEnc.EncodeAll(payload, nil)
		flags |= format.FlagCompressed
	}

	header := format.Header{Type: typ, Version: version, Flags: flags}

	tmpFile, err := os.CreateTemp(b.cfg.Dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	cleanup := func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}

	if err := tmpFile.Chmod(b.cfg.FileMode); err != nil {
		cleanup()
		return err
	}
	headerBytes := header.Encode()
	if _, err := tmpFile.Write(headerBytes[:]); err != nil {
		cleanup()
		return err
	}
	if _, err := tmpFile.Write(payload); err != nil {
		cleanup()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// readRecordsFile reads and decodes a mapping or chunk file. A missing file
// reads as an empty record list.
func (b *Backend) readRecordsFile(path string, typ byte, version byte) ([]cellRecord, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) < format.HeaderSize {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), format.ErrHeaderTooSmall)
	}

	h, err := format.DecodeAndValidate(data[:format.HeaderSize], typ, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	payload := data[format.HeaderSize:]
	if h.Flags&format.FlagCompressed != 0 {
		payload, err = zstdDec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: decompress: %w", filepath.Base(path), err)
		}
	}

	var recs []cellRecord
	if err := msgpack.Unmarshal(payload, &recs); err != nil {
		return nil, fmt.Errorf("%s: decode records: %w", filepath.Base(path), err)
	}
	return recs, nil
}

func (b *Backend) mappingPath() string {
	return filepath.Join(b.cfg.Dir, mappingFileName)
}

func (b *Backend) chunkPath(id string) string {
	return filepath.Join(b.cfg.Dir, id)
}

var _ store.Backend = (*Backend)(nil)
