package store

import (
	"errors"
	"log/slog"
	"math"
	"slices"
	"sync"

	"cellstore/internal/logging"
)

// Defaults for the two engine tunables. Deployments normally raise
// CacheSize via the config file; SnapshotEvery trades durability
// granularity for throughput.
const (
	DefaultCacheSize     = 2
	DefaultSnapshotEvery = 1
)

var ErrEngineClosed = errors.New("engine is closed")

type Config struct {
	// Backend provides persistence. Required.
	Backend Backend

	// CacheSize is the maximum number of chunks simultaneously resident.
	// Defaults to DefaultCacheSize.
	CacheSize int

	// SnapshotEvery is the number of mutations between snapshots.
	// Defaults to DefaultSnapshotEvery.
	SnapshotEvery int

	// Logger for structured logging. If nil, logging is disabled.
	// The engine scopes this logger with component="engine".
	Logger *slog.Logger
}

// Engine is the cache/persistence engine. It owns three in-memory indexes:
//
//   - keyIndex:  (row, col) -> chunk ID, the authoritative key ownership map
//   - chunkKeys: chunk ID -> set of keys, the inversion of keyIndex
//   - resident:  the cached cell contents of resident chunks
//
// plus a per-resident-chunk use counter driving least-accessed eviction.
// Every mutation is appended to the backend's operation log before the
// in-memory state changes; every SnapshotEvery mutations the mapping and
// all resident chunks are flushed and the log is truncated. On
// construction the engine reloads the mapping and replays the log.
//
// All public operations serialize on an internal mutex: the engine's state
// machine is single-writer, and a multi-threaded adapter gets its required
// serialization here rather than at each call site.
type Engine struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger

	cacheSize     int
	snapshotEvery int

	keyIndex  CellMap
	chunkKeys map[string]map[Key]struct{}
	resident  CellMap
	useCount  map[string]int

	writes    int // mutations since last snapshot
	replaying bool
	closed    bool
}

// NewEngine constructs an engine and runs recovery: the persisted mapping is
// loaded, the reverse index derived from it, and the operation log replayed
// with log appends and snapshots suppressed.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Backend == nil {
		return nil, ErrMissingBackend
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.SnapshotEvery <= 0 {
		cfg.SnapshotEvery = DefaultSnapshotEvery
	}

	logger := logging.Default(cfg.Logger).With("component", "engine")

	e := &Engine{
		backend:       cfg.Backend,
		logger:        logger,
		cacheSize:     cfg.CacheSize,
		snapshotEvery: cfg.SnapshotEvery,
		chunkKeys:     make(map[string]map[Key]struct{}),
		resident:      make(CellMap),
		useCount:      make(map[string]int),
	}

	mapping, err := cfg.Backend.LoadMapping()
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		mapping = make(CellMap)
	}
	e.keyIndex = mapping
	for row, cols := range mapping {
		for col, id := range cols {
			keys := e.chunkKeys[id]
			if keys == nil {
				keys = make(map[Key]struct{})
				e.chunkKeys[id] = keys
			}
			keys[Key{Row: row, Col: col}] = struct{}{}
		}
	}

	e.replaying = true
	err = cfg.Backend.Replay(e.applyLogged)
	e.replaying = false
	if err != nil {
		return nil, err
	}

	logger.Info("engine ready",
		"keys", e.keyIndex.Len(),
		"chunks", len(e.chunkKeys),
		"cache_size", e.cacheSize,
		"snapshot_every", e.snapshotEvery,
	)

	return e, nil
}

// Get returns the value at (row, col). Returns ErrNotFound for absent keys.
func (e *Engine) Get(row, col string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", ErrEngineClosed
	}

	known, err := e.ensureResident(row, col)
	if err != nil {
		return "", err
	}
	if !known {
		return "", ErrNotFound
	}

	id, _ := e.keyIndex.Get(row, col)
	e.useCount[id]++
	val, _ := e.resident.Get(row, col)
	return val, nil
}

// Put inserts or overwrites the cell at (row, col).
func (e *Engine) Put(row, col, val string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.put(row, col, val, "")
}

// CPut overwrites the cell only if its current value equals expected.
// Returns ErrMismatch without mutating when the key is absent or the
// value differs.
func (e *Engine) CPut(row, col, expected, val string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	known, err := e.ensureResident(row, col)
	if err != nil {
		return err
	}
	if !known {
		return ErrMismatch
	}

	id, _ := e.keyIndex.Get(row, col)
	cur, _ := e.resident.Get(row, col)
	if cur != expected {
		e.useCount[id]++
		return ErrMismatch
	}

	if err := e.backend.AppendLog(Op{Kind: OpPut, Chunk: id, Row: row, Col: col, Val: val}); err != nil {
		return err
	}

	e.useCount[id]++
	e.resident.Set(row, col, val)

	return e.finishMutation()
}

// Delete removes the cell at (row, col). Returns ErrMismatch when the key
// is absent. The chunk ID is not reclaimed here; an emptied chunk is swept
// at its next flush.
func (e *Engine) Delete(row, col string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	known, err := e.ensureResident(row, col)
	if err != nil {
		return err
	}
	if !known {
		return ErrMismatch
	}

	if err := e.remove(row, col); err != nil {
		return err
	}
	return e.finishMutation()
}

// Close flushes a final snapshot when mutations are pending and marks the
// engine unusable. The backend is not closed; its owner does that.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	if e.writes == 0 {
		return nil
	}
	e.writes = 0
	return e.snapshotLocked()
}

// put applies a write. chunkHint carries the chunk ID from a replayed log
// record so recovery reuses the originally allocated chunk; it is empty for
// adapter calls.
func (e *Engine) put(row, col, val, chunkHint string) error {
	known, err := e.ensureResident(row, col)
	if err != nil {
		return err
	}

	var id string
	if known {
		id, _ = e.keyIndex.Get(row, col)
	} else if chunkHint != "" {
		id = chunkHint
	} else {
		id = e.backend.NewChunkID()
	}

	if !e.replaying {
		if err := e.backend.AppendLog(Op{Kind: OpPut, Chunk: id, Row: row, Col: col, Val: val}); err != nil {
			return err
		}
	}

	e.useCount[id]++
	if !known {
		e.keyIndex.Set(row, col, id)
		keys := e.chunkKeys[id]
		if keys == nil {
			keys = make(map[Key]struct{})
			e.chunkKeys[id] = keys
		}
		keys[Key{Row: row, Col: col}] = struct{}{}
	}
	e.resident.Set(row, col, val)

	// The capacity check runs against all chunks known to the reverse
	// index, not just residents, so a first write can trigger eviction one
	// step before the resident count alone would.
	if len(e.chunkKeys) > e.cacheSize {
		if err := e.evict(); err != nil {
			return err
		}
	}

	return e.finishMutation()
}

// remove deletes a key that is known and resident. Callers have already
// checked residency.
func (e *Engine) remove(row, col string) error {
	id, _ := e.keyIndex.Get(row, col)

	if !e.replaying {
		if err := e.backend.AppendLog(Op{Kind: OpDelete, Chunk: id, Row: row, Col: col}); err != nil {
			return err
		}
	}

	e.useCount[id]++
	delete(e.chunkKeys[id], Key{Row: row, Col: col})
	e.resident.Delete(row, col)
	e.keyIndex.Delete(row, col)
	return nil
}

// applyLogged replays one operation log record. Log appends and snapshots
// are suppressed (e.replaying); a replayed delete of an absent key is a
// no-op, which makes replay idempotent.
func (e *Engine) applyLogged(op Op) error {
	switch op.Kind {
	case OpPut:
		return e.put(op.Row, op.Col, op.Val, op.Chunk)
	case OpDelete:
		known, err := e.ensureResident(op.Row, op.Col)
		if err != nil {
			return err
		}
		if !known {
			return nil
		}
		return e.remove(op.Row, op.Col)
	default:
		return errors.New("unknown operation kind in log: " + op.Kind.String())
	}
}

// ensureResident reports whether (row, col) exists, pulling its chunk into
// the resident map first when needed. Admission evicts the least-accessed
// resident chunk when the cache is full.
func (e *Engine) ensureResident(row, col string) (bool, error) {
	id, ok := e.keyIndex.Get(row, col)
	if !ok {
		return false, nil
	}
	if _, ok := e.resident.Get(row, col); ok {
		return true, nil
	}

	if err := e.evict(); err != nil {
		return false, err
	}
	if err := e.backend.ReadChunk(id, e.resident); err != nil {
		return false, err
	}
	if _, ok := e.useCount[id]; !ok {
		e.useCount[id] = 0
	}
	e.logger.Debug("chunk admitted", "chunk", id)
	return true, nil
}

// evict flushes and drops the least-accessed resident chunk. A cache below
// capacity has nothing to evict.
func (e *Engine) evict() error {
	if len(e.useCount) < e.cacheSize {
		return nil
	}

	victim := e.leastUsed()
	if victim == "" {
		return nil
	}
	e.logger.Debug("evicting chunk", "chunk", victim, "uses", e.useCount[victim])
	return e.flush(victim, true)
}

// leastUsed returns the resident chunk with the smallest use count.
// Ties break arbitrarily.
func (e *Engine) leastUsed() string {
	var victim string
	best := math.MaxInt
	for id, cnt := range e.useCount {
		if cnt < best {
			victim = id
			best = cnt
		}
	}
	return victim
}

// flush writes a chunk's resident cells to its chunk file. With drop set
// the cells leave the resident map and the use counter entry is removed
// (eviction); without it the chunk stays resident (snapshot). A chunk that
// no longer owns any keys is swept instead: its file is removed and the
// chunk forgotten.
func (e *Engine) flush(id string, drop bool) error {
	keys := e.chunkKeys[id]
	if len(keys) == 0 {
		if err := e.backend.RemoveChunk(id); err != nil {
			return err
		}
		delete(e.chunkKeys, id)
		delete(e.useCount, id)
		e.logger.Debug("swept empty chunk", "chunk", id)
		return nil
	}

	cells := make(CellMap, len(keys))
	for k := range keys {
		if val, ok := e.resident.Get(k.Row, k.Col); ok {
			cells.Set(k.Row, k.Col, val)
		}
	}
	if err := e.backend.WriteChunk(id, cells); err != nil {
		return err
	}

	if drop {
		for k := range keys {
			e.resident.Delete(k.Row, k.Col)
		}
		delete(e.useCount, id)
	}
	return nil
}

// finishMutation advances the write counter and snapshots at the threshold.
// Suppressed during replay.
func (e *Engine) finishMutation() error {
	if e.replaying {
		return nil
	}
	_, err := e.maybeSnapshot()
	return err
}

// maybeSnapshot reports whether a snapshot was performed; call sites ignore
// the result.
func (e *Engine) maybeSnapshot() (bool, error) {
	e.writes++
	if e.writes < e.snapshotEvery {
		return false, nil
	}
	e.writes = 0
	return true, e.snapshotLocked()
}

// snapshotLocked writes the mapping, flushes every resident chunk, then
// truncates the operation log. The log is cleared last so a crash at any
// earlier point replays into a consistent state.
func (e *Engine) snapshotLocked() error {
	e.logger.Debug("snapshot started", "chunks", len(e.useCount))

	if err := e.backend.WriteMapping(e.keyIndex); err != nil {
		return err
	}
	ids := make([]string, 0, len(e.useCount))
	for id := range e.useCount {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := e.flush(id, false); err != nil {
			return err
		}
	}
	if err := e.backend.ClearLog(); err != nil {
		return err
	}

	e.logger.Debug("snapshot finished")
	return nil
}
