// Package memory provides an in-memory persistence backend.
// It mirrors the file backend's observable behavior without touching disk,
// for tests and throwaway dev runs. Nothing survives the process.
package memory

import (
	"log/slog"
	"sync"

	"cellstore/internal/logging"
	"cellstore/internal/store"

	"github.com/google/uuid"
)

type Config struct {
	// Logger for structured logging. If nil, logging is disabled.
	// The backend scopes this logger with component="backend".
	Logger *slog.Logger
}

// Backend is the in-memory store.Backend implementation.
type Backend struct {
	mu      sync.Mutex
	mapping store.CellMap
	chunks  map[string]store.CellMap
	log     []store.Op
	logger  *slog.Logger
}

func NewBackend(cfg Config) *Backend {
	return &Backend{
		mapping: make(store.CellMap),
		chunks:  make(map[string]store.CellMap),
		logger:  logging.Default(cfg.Logger).With("component", "backend", "type", "memory"),
	}
}

func (b *Backend) LoadMapping() (store.CellMap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mapping.Clone(), nil
}

func (b *Backend) WriteMapping(m store.CellMap) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mapping = m.Clone()
	return nil
}

func (b *Backend) NewChunkID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (b *Backend) ReadChunk(id string, dst store.CellMap) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cells, ok := b.chunks[id]
	if !ok {
		return nil
	}
	for row, cols := range cells {
		for col, val := range cols {
			if _, ok := dst.Get(row, col); !ok {
				dst.Set(row, col, val)
			}
		}
	}
	return nil
}

func (b *Backend) WriteChunk(id string, cells store.CellMap) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks[id] = cells.Clone()
	return nil
}

func (b *Backend) RemoveChunk(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.chunks, id)
	return nil
}

func (b *Backend) AppendLog(op store.Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = append(b.log, op)
	return nil
}

func (b *Backend) ClearLog() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = b.log[:0]
	return nil
}

func (b *Backend) Replay(apply func(store.Op) error) error {
	b.mu.Lock()
	ops := make([]store.Op, len(b.log))
	copy(ops, b.log)
	b.mu.Unlock()

	for _, op := range ops {
		if err := apply(op); err != nil {
			return err
		}
	}
	return nil
}

// LogLen returns the number of records in the operation log.
func (b *Backend) LogLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.log)
}

// Chunk returns a copy of a chunk's stored cells and whether the chunk
// file exists.
func (b *Backend) Chunk(id string) (store.CellMap, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cells, ok := b.chunks[id]
	if !ok {
		return nil, false
	}
	return cells.Clone(), true
}

// ChunkCount returns the number of chunk files.
func (b *Backend) ChunkCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chunks)
}

// Mapping returns a copy of the persisted mapping.
func (b *Backend) Mapping() store.CellMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mapping.Clone()
}

var _ store.Backend = (*Backend)(nil)
