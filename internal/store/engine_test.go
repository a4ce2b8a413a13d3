package store

import (
	"errors"
	"fmt"
	"testing"
)

// fakeBackend is an in-memory Backend with deterministic chunk IDs and
// fault hooks for crash and failure simulation.
type fakeBackend struct {
	mapping CellMap
	chunks  map[string]CellMap
	log     []Op
	nextID  int

	suppressClear bool  // simulate a crash before clear_temp_log
	failAppend    error // injected AppendLog failure
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		mapping: make(CellMap),
		chunks:  make(map[string]CellMap),
	}
}

func (b *fakeBackend) LoadMapping() (CellMap, error) {
	return b.mapping.Clone(), nil
}

func (b *fakeBackend) WriteMapping(m CellMap) error {
	b.mapping = m.Clone()
	return nil
}

func (b *fakeBackend) NewChunkID() string {
	b.nextID++
	return fmt.Sprintf("chunk-%03d", b.nextID)
}

func (b *fakeBackend) ReadChunk(id string, dst CellMap) error {
	for row, cols := range b.chunks[id] {
		for col, val := range cols {
			if _, ok := dst.Get(row, col); !ok {
				dst.Set(row, col, val)
			}
		}
	}
	return nil
}

func (b *fakeBackend) WriteChunk(id string, cells CellMap) error {
	b.chunks[id] = cells.Clone()
	return nil
}

func (b *fakeBackend) RemoveChunk(id string) error {
	delete(b.chunks, id)
	return nil
}

func (b *fakeBackend) AppendLog(op Op) error {
	if b.failAppend != nil {
		return b.failAppend
	}
	b.log = append(b.log, op)
	return nil
}

func (b *fakeBackend) ClearLog() error {
	if b.suppressClear {
		return nil
	}
	b.log = b.log[:0]
	return nil
}

func (b *fakeBackend) Replay(apply func(Op) error) error {
	ops := make([]Op, len(b.log))
	copy(ops, b.log)
	for _, op := range ops {
		if err := apply(op); err != nil {
			return err
		}
	}
	return nil
}

func newTestEngine(t *testing.T, backend Backend, cacheSize, snapshotEvery int) *Engine {
	t.Helper()
	e, err := NewEngine(Config{
		Backend:       backend,
		CacheSize:     cacheSize,
		SnapshotEvery: snapshotEvery,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func mustGet(t *testing.T, e *Engine, row, col, want string) {
	t.Helper()
	got, err := e.Get(row, col)
	if err != nil {
		t.Fatalf("Get(%s, %s): %v", row, col, err)
	}
	if got != want {
		t.Fatalf("Get(%s, %s) = %q, want %q", row, col, got, want)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mustGet(t, e, "a", "x", "1")

	// The snapshot after the put persisted the mapping and cleared the log.
	if id, ok := backend.mapping.Get("a", "x"); !ok || id == "" {
		t.Fatal("mapping file should contain the key after snapshot")
	}
	if len(backend.log) != 0 {
		t.Fatalf("oplog should be empty after snapshot, has %d records", len(backend.log))
	}

	id, _ := backend.mapping.Get("a", "x")
	cells, ok := backend.chunks[id]
	if !ok {
		t.Fatalf("chunk file %s missing after snapshot", id)
	}
	if val, _ := cells.Get("a", "x"); val != "1" {
		t.Fatalf("chunk file has %q, want %q", val, "1")
	}
}

func TestGetMissing(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	if _, err := e.Get("a", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
}

func TestCPutFlow(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.CPut("a", "x", "1", "2"); err != nil {
		t.Fatalf("CPut with matching expected: %v", err)
	}
	mustGet(t, e, "a", "x", "2")

	if err := e.CPut("a", "x", "1", "3"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("CPut with stale expected = %v, want ErrMismatch", err)
	}
	mustGet(t, e, "a", "x", "2")
}

func TestCPutMissingKey(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	if err := e.CPut("a", "x", "", "1"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("CPut on absent key = %v, want ErrMismatch", err)
	}
}

func TestDeleteRemovesKeyAndSweepsChunk(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Delete("a", "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := e.Get("a", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if backend.mapping.Len() != 0 {
		t.Fatalf("mapping file should be empty, has %d entries", backend.mapping.Len())
	}
	// The emptied chunk was swept at the snapshot flush.
	if len(backend.chunks) != 0 {
		t.Fatalf("empty chunk should have been swept, %d chunk files remain", len(backend.chunks))
	}

	if err := e.Delete("a", "x"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("Delete of absent key = %v, want ErrMismatch", err)
	}
}

func TestEvictionOnNewChunks(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	// Three distinct rows allocate three distinct chunks; the third put
	// pushes the reverse index past the capacity check and forces an
	// eviction.
	if err := e.Put("k1", "c", "v1"); err != nil {
		t.Fatalf("Put k1: %v", err)
	}
	if err := e.Put("k2", "c", "v2"); err != nil {
		t.Fatalf("Put k2: %v", err)
	}
	if err := e.Put("k3", "c", "v3"); err != nil {
		t.Fatalf("Put k3: %v", err)
	}

	if len(e.useCount) > 2 {
		t.Fatalf("resident chunks = %d, want <= 2", len(e.useCount))
	}

	mustGet(t, e, "k1", "c", "v1")
	mustGet(t, e, "k2", "c", "v2")
	mustGet(t, e, "k3", "c", "v3")
}

func TestResidentCountBounded(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	for i := 0; i < 10; i++ {
		row := fmt.Sprintf("r%d", i)
		if err := e.Put(row, "c", fmt.Sprintf("v%d", i)); err != nil {
			t.Fatalf("Put %s: %v", row, err)
		}
		if len(e.useCount) > 2 {
			t.Fatalf("after put %d: resident chunks = %d, want <= 2", i, len(e.useCount))
		}
	}
	for i := 0; i < 10; i++ {
		row := fmt.Sprintf("r%d", i)
		mustGet(t, e, row, "c", fmt.Sprintf("v%d", i))
		if len(e.useCount) > 2 {
			t.Fatalf("after get %d: resident chunks = %d, want <= 2", i, len(e.useCount))
		}
	}
}

// checkInverse asserts that keyIndex and chunkKeys are mutual inverses.
func checkInverse(t *testing.T, e *Engine) {
	t.Helper()
	for row, cols := range e.keyIndex {
		for col, id := range cols {
			if _, ok := e.chunkKeys[id][Key{Row: row, Col: col}]; !ok {
				t.Fatalf("key (%s, %s) -> %s missing from reverse index", row, col, id)
			}
		}
	}
	for id, keys := range e.chunkKeys {
		for k := range keys {
			got, ok := e.keyIndex.Get(k.Row, k.Col)
			if !ok || got != id {
				t.Fatalf("reverse index %s -> %s not mirrored in key index (got %q, %v)", id, k, got, ok)
			}
		}
	}
}

func TestIndexesMutualInverse(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	steps := []func() error{
		func() error { return e.Put("a", "x", "1") },
		func() error { return e.Put("a", "y", "2") },
		func() error { return e.Put("b", "x", "3") },
		func() error { return e.Put("c", "x", "4") },
		func() error { return e.CPut("a", "x", "1", "5") },
		func() error { return e.Delete("a", "y") },
		func() error { return e.Put("d", "x", "6") },
		func() error { return e.Delete("b", "x") },
		func() error { return e.Put("a", "x", "7") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		checkInverse(t, e)
	}
}

func TestCrashRecoveryReplaysLog(t *testing.T) {
	// Snapshot threshold high enough that nothing is flushed: the only
	// durable trace of the put is the oplog record.
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 100)

	if err := e.Put("r", "c", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(backend.log) != 1 {
		t.Fatalf("oplog records = %d, want 1", len(backend.log))
	}
	if backend.mapping.Len() != 0 {
		t.Fatal("mapping should not have been written before the snapshot threshold")
	}

	// "Restart": a fresh engine over the same backend replays the log.
	e2 := newTestEngine(t, backend, 2, 100)
	mustGet(t, e2, "r", "c", "v")
}

func TestCrashRecoveryWithSuppressedClear(t *testing.T) {
	// Crash between the snapshot's chunk writes and the log truncation:
	// the log still holds the mutation that the snapshot already made
	// durable. Replay must be idempotent over it.
	backend := newFakeBackend()
	backend.suppressClear = true
	e := newTestEngine(t, backend, 2, 1)

	if err := e.Put("r", "c", "v"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(backend.log) != 1 {
		t.Fatalf("oplog records = %d, want 1 (clear suppressed)", len(backend.log))
	}

	e2 := newTestEngine(t, backend, 2, 1)
	mustGet(t, e2, "r", "c", "v")
}

func TestReplayIdempotent(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 100)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Put("b", "x", "2"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Put("a", "x", "3"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Delete("b", "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Replay does not truncate the log, so each construction replays the
	// same records again. Two successive recoveries must agree.
	e2 := newTestEngine(t, backend, 2, 100)
	e3 := newTestEngine(t, backend, 2, 100)

	for _, e := range []*Engine{e2, e3} {
		mustGet(t, e, "a", "x", "3")
		if _, err := e.Get("b", "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(b, x) after replay = %v, want ErrNotFound", err)
		}
	}
}

func TestHotChunkRetention(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	if err := e.Put("a", "c", "va"); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := e.Put("b", "c", "vb"); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	chunkA, _ := e.keyIndex.Get("a", "c")
	chunkB, _ := e.keyIndex.Get("b", "c")

	// Separate the counters before the third chunk exists so the eviction
	// choice below is deterministic.
	for _i := 0; _i < 5; _i++ {
		mustGet(t, e, "a", "c", "va")
	}
	mustGet(t, e, "b", "c", "vb")
	mustGet(t, e, "b", "c", "vb")

	// The third chunk is created with a use count of 1, the minimum, so
	// the capacity-triggered eviction removes it again immediately.
	if err := e.Put("x", "c", "vx"); err != nil {
		t.Fatalf("Put x: %v", err)
	}
	chunkX, _ := e.keyIndex.Get("x", "c")
	if _, resident := e.useCount[chunkX]; resident {
		t.Fatal("freshly created minimum-count chunk should have been evicted")
	}

	// Heat chunk A well past B, then admit X by reading it: the miss fill
	// must evict B, the least-accessed resident, and keep A.
	for _i := 0; _i < 100; _i++ {
		mustGet(t, e, "a", "c", "va")
	}
	mustGet(t, e, "x", "c", "vx")

	if _, resident := e.useCount[chunkA]; !resident {
		t.Fatal("hot chunk A should remain resident")
	}
	if _, resident := e.useCount[chunkB]; resident {
		t.Fatal("cold chunk B should have been evicted")
	}
	if _, resident := e.useCount[chunkX]; !resident {
		t.Fatal("admitted chunk X should be resident")
	}
}

func TestEvictLeastUsed(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 3, 1)

	if err := e.Put("a", "c", "va"); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := e.Put("b", "c", "vb"); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	if err := e.Put("c", "c", "vc"); err != nil {
		t.Fatalf("Put c: %v", err)
	}
	chunkB, _ := e.keyIndex.Get("b", "c")

	mustGet(t, e, "a", "c", "va")
	mustGet(t, e, "a", "c", "va")
	mustGet(t, e, "c", "c", "vc")

	// Counters: a=3, b=1, c=2.
	if got := e.leastUsed(); got != chunkB {
		t.Fatalf("leastUsed() = %s, want %s", got, chunkB)
	}

	if err := e.evict(); err != nil {
		t.Fatalf("evict: %v", err)
	}
	if _, resident := e.useCount[chunkB]; resident {
		t.Fatal("evict should have removed the least-accessed chunk")
	}
	if _, ok := backend.chunks[chunkB]; !ok {
		t.Fatal("evicted chunk should have been flushed to its file")
	}
}

func TestCPutMismatchLeavesValueIntact(t *testing.T) {
	e := newTestEngine(t, newFakeBackend(), 2, 1)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	before, err := e.Get("a", "x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := e.CPut("a", "x", "wrong", "2"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("CPut = %v, want ErrMismatch", err)
	}

	after, err := e.Get("a", "x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after != before {
		t.Fatalf("value changed across failed CPut: %q -> %q", before, after)
	}
}

func TestSnapshotThreshold(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 3)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Put("a", "y", "2"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(backend.log) != 2 {
		t.Fatalf("oplog records before threshold = %d, want 2", len(backend.log))
	}
	if backend.mapping.Len() != 0 {
		t.Fatal("mapping should not be written before the threshold")
	}

	if err := e.Put("a", "z", "3"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(backend.log) != 0 {
		t.Fatalf("oplog records after threshold = %d, want 0", len(backend.log))
	}
	if backend.mapping.Len() != 3 {
		t.Fatalf("mapping entries after snapshot = %d, want 3", backend.mapping.Len())
	}
}

func TestAppendFailureLeavesNoGhostMutation(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	injected := errors.New("disk full")
	backend.failAppend = injected

	if err := e.Put("a", "x", "1"); !errors.Is(err, injected) {
		t.Fatalf("Put = %v, want injected failure", err)
	}

	backend.failAppend = nil
	if _, err := e.Get("a", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after failed put = %v, want ErrNotFound", err)
	}
	if len(backend.log) != 0 {
		t.Fatal("no log record should exist for the failed put")
	}
}

func TestCloseFlushesPendingWrites(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 100)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if backend.mapping.Len() != 1 {
		t.Fatal("Close should snapshot pending mutations")
	}
	if len(backend.log) != 0 {
		t.Fatal("Close should clear the oplog after its snapshot")
	}

	if err := e.Put("b", "x", "2"); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("Put after Close = %v, want ErrEngineClosed", err)
	}
	if _, err := e.Get("a", "x"); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("Get after Close = %v, want ErrEngineClosed", err)
	}
}

func TestRecoveryDerivesReverseIndex(t *testing.T) {
	backend := newFakeBackend()
	e := newTestEngine(t, backend, 2, 1)

	if err := e.Put("a", "x", "1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := e.Put("a", "y", "2"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	e2 := newTestEngine(t, backend, 2, 1)
	checkInverse(t, e2)
	mustGet(t, e2, "a", "x", "1")
	mustGet(t, e2, "a", "y", "2")
}

func TestNewEngineRequiresBackend(t *testing.T) {
	if _, err := NewEngine(Config{}); !errors.Is(err, ErrMissingBackend) {
		t.Fatalf("NewEngine without backend = %v, want ErrMissingBackend", err)
	}
}
