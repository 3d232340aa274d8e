package scopez

import (
	"crypto/rand"
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/zoobzio/clockz"
)

// IDGenerator mints TraceContexts for callers acting as the tracer.
// Safe for concurrent use by multiple goroutines.
type IDGenerator struct {
	clock    clockz.Clock
	random   func([]byte) (int, error)
	pool     *IDPool
	poolOnce sync.Once
}

// NewIDGenerator creates a generator backed by crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{clock: clockz.RealClock, random: rand.Read}
}

// WithClock returns a new generator using clock for the fallback ids
// produced when crypto/rand fails.
func (*IDGenerator) WithClock(clock clockz.Clock) *IDGenerator {
	return &IDGenerator{clock: clock, random: rand.Read}
}

func (g *IDGenerator) ensurePool() {
	g.poolOnce.Do(func() {
		g.pool = NewIDPool(runtime.NumCPU()*100, g.newID)
	})
}

// newID returns a random non-zero id.
func (g *IDGenerator) newID() uint64 {
	var buf [8]byte
	for {
		if _, err := g.random(buf[:]); err != nil {
			// Fall back to the clock if crypto/rand fails.
			return uint64(g.clock.Now().UnixNano()) | 1
		}
		if id := binary.BigEndian.Uint64(buf[:]); id != 0 {
			return id
		}
	}
}

// NextID returns a fresh non-zero 64-bit id. After Close ids are drawn
// directly without the pool.
func (g *IDGenerator) NextID() uint64 {
	g.ensurePool()
	if g.pool == nil {
		return g.newID()
	}
	return g.pool.Get()
}

// NewRoot returns a context starting a new trace with a 128-bit trace id.
func (g *IDGenerator) NewRoot() TraceContext {
	return TraceContext{
		TraceID: TraceID{High: g.NextID(), Low: g.NextID()},
		SpanID:  SpanID(g.NextID()),
	}
}

// NewChild returns a context for a child span of parent. An invalid parent
// starts a new trace.
func (g *IDGenerator) NewChild(parent TraceContext) TraceContext {
	if !parent.IsValid() {
		return g.NewRoot()
	}
	return TraceContext{
		TraceID:  parent.TraceID,
		SpanID:   SpanID(g.NextID()),
		ParentID: parent.SpanID,
	}
}

// Close stops the background pool. A generator that never issued an id
// never starts one.
func (g *IDGenerator) Close() {
	g.poolOnce.Do(func() {})
	if g.pool != nil {
		g.pool.Close()
	}
}
