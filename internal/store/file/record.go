package file

import (
	"encoding/binary"
	"errors"
	"fmt"

	"cellstore/internal/store"

	"github.com/vmihailenco/msgpack/v5"
)

// Operation log record framing:
//
//	size (4 bytes, little-endian, total record size including both size fields)
//	magic (1 byte, 0x63)
//	version (1 byte, 0x01)
//	kind (1 byte, store.OpKind)
//	payload (msgpack: chunk, row, col, val)
//	size (4 bytes, little-endian, must equal the leading size)
//
// The duplicated size field lets replay verify that a record whose bytes are
// all present is intact; a record with missing bytes is a torn tail and is
// discarded rather than reported as corruption.
const (
	logMagicByte   = 0x63
	logVersionByte = 0x01

	sizeFieldBytes  = 4
	magicFieldBytes = 1
	versionBytes    = 1
	kindBytes       = 1

	logHeaderBytes   = sizeFieldBytes + magicFieldBytes + versionBytes + kindBytes
	minLogRecordSize = logHeaderBytes + sizeFieldBytes

	// maxLogRecordSize bounds a single record; values are required to fit
	// comfortably in a chunk, so anything larger is corruption.
	maxLogRecordSize = 64 << 20
)

var (
	ErrLogRecordTooSmall  = errors.New("log record size too small")
	ErrLogRecordTooLarge  = errors.New("log record size too large")
	ErrLogMagicMismatch   = errors.New("log record magic mismatch")
	ErrLogVersionMismatch = errors.New("log record version mismatch")
	ErrLogSizeMismatch    = errors.New("log record size mismatch")
	ErrLogKindInvalid     = errors.New("log record kind invalid")
)

// logPayload is the msgpack body of a log record.
type logPayload struct {
	Chunk string `msgpack:"chunk"`
	Row   string `msgpack:"row"`
	Col   string `msgpack:"col"`
	Val   string `msgpack:"val"`
}

func encodeLogRecord(op store.Op) ([]byte, error) {
	if op.Kind != store.OpPut && op.Kind != store.OpDelete {
		return nil, ErrLogKindInvalid
	}

	payload, err := msgpack.Marshal(logPayload{
		Chunk: op.Chunk,
		Row:   op.Row,
		Col:   op.Col,
		Val:   op.Val,
	})
	if err != nil {
		return nil, err
	}

	size := uint64(minLogRecordSize) + uint64(len(payload))
	if size > maxLogRecordSize {
		return nil, ErrLogRecordTooLarge
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[:sizeFieldBytes], uint32(size))
	cursor := sizeFieldBytes
	buf[cursor] = logMagicByte
	cursor += magicFieldBytes
	buf[cursor] = logVersionByte
	cursor += versionBytes
	buf[cursor] = byte(op.Kind)
	cursor += kindBytes
	copy(buf[cursor:], payload)
	cursor += len(payload)
	binary.LittleEndian.PutUint32(buf[cursor:cursor+sizeFieldBytes], uint32(size))

	return buf, nil
}

func decodeLogRecord(buf []byte) (store.Op, error) {
	if len(buf) < minLogRecordSize {
		return store.Op{}, ErrLogRecordTooSmall
	}
	size := binary.LittleEndian.Uint32(buf[:sizeFieldBytes])
	if size != uint32(len(buf)) {
		return store.Op{}, ErrLogSizeMismatch
	}

	cursor := sizeFieldBytes
	if buf[cursor] != logMagicByte {
		return store.Op{}, ErrLogMagicMismatch
	}
	cursor += magicFieldBytes
	if buf[cursor] != logVersionByte {
		return store.Op{}, ErrLogVersionMismatch
	}
	cursor += versionBytes
	kind := store.OpKind(buf[cursor])
	if kind != store.OpPut && kind != store.OpDelete {
		return store.Op{}, ErrLogKindInvalid
	}
	cursor += kindBytes

	payloadEnd := len(buf) - sizeFieldBytes
	trailing := binary.LittleEndian.Uint32(buf[payloadEnd:])
	if trailing != size {
		return store.Op{}, ErrLogSizeMismatch
	}

	var payload logPayload
	if err := msgpack.Unmarshal(buf[cursor:payloadEnd], &payload); err != nil {
		return store.Op{}, fmt.Errorf("log record payload: %w", err)
	}

	return store.Op{
		Kind:  kind,
		Chunk: payload.Chunk,
		Row:   payload.Row,
		Col:   payload.Col,
		Val:   payload.Val,
	}, nil
}
