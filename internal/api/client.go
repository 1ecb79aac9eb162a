// Package api simulates a remote data API on top of a store.Store.
// Every call waits a fixed latency before touching the store so callers
// can exercise their loading states.
package api

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultLatency is the simulated round-trip time
const DefaultLatency = 1500 * time.Millisecond

// Client is the fake API. It is safe for concurrent use.
type Client struct {
	store   store.Store
	latency time.Duration
	log     *zap.Logger
	newID   func() string
	now     func() time.Time

	lists   singleflight.Group
	metrics *Metrics

	mu      sync.Mutex
	pending map[models.Op]int
}

// Option configures a Client
type Option func(*Client)

// WithLatency sets the simulated round-trip time. Zero disables the delay.
func WithLatency(d time.Duration) Option {
	return func(c *Client) { c.latency = d }
}

// WithLogger sets the logger used for call tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDGenerator overrides how new record IDs are made
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// WithClock overrides the time source used for deletion timestamps
func WithClock(fn func() time.Time) Option {
	return func(c *Client) { c.now = fn }
}

// New creates a client over s
func New(s store.Store, opts ...Option) *Client {
	c := &Client{
		store:   s,
		latency: DefaultLatency,
		log:     zap.NewNop(),
		newID:   uuid.NewString,
		now:     time.Now,
		metrics: NewMetrics(),
		pending: make(map[models.Op]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latency returns the simulated round-trip time
func (c *Client) Latency() time.Duration {
	return c.latency
}

// Loading reports whether any call of op is in flight
func (c *Client) Loading(op models.Op) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[op] > 0
}

// Pending returns the number of in-flight calls per operation
func (c *Client) Pending() map[models.Op]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.pending)
}

// Metrics returns the call counts so far
func (c *Client) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Snapshot reads the current list straight from the store, without delay
func (c *Client) Snapshot(ctx context.Context) ([]models.Record, error) {
	return c.store.List(ctx)
}

// List returns all records. Concurrent calls share one round trip.
func (c *Client) List(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	err := c.call(ctx, models.OpList, "", func(ctx context.Context) error {
		ch := c.lists.DoChan("list", func() (any, error) {
			// The shared flight must not die with whichever caller started it.
			if err := c.wait(context.Background()); err != nil {
				return nil, err
			}
			return c.store.List(context.Background())
		})
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-ch:
			if res.Shared {
				c.metrics.RecordSharedList()
			}
			if res.Err != nil {
				return res.Err
			}
			// Each caller gets its own copy of the shared slice
			shared := res.Val.([]models.Record)
			records = append([]models.Record(nil), shared...)
			return nil
		}
	}, false)
	return records, err
}

// Get returns the record with the given ID or store.ErrNotFound
func (c *Client) Get(ctx context.Context, id string) (models.Record, error) {
	var r models.Record
	err := c.call(ctx, models.OpGet, id, func(ctx context.Context) error {
		var err error
		r, err = c.store.Get(ctx, id)
		return err
	}, true)
	return r, err
}

// Create validates the draft, assigns a new ID and appends the record
func (c *Client) Create(ctx context.Context, d models.Draft) (models.Record, error) {
	if err := d.Validate(); err != nil {
		return models.Record{}, err
	}
	r := d.Apply(c.newID())
	err := c.call(ctx, models.OpCreate, r.ID, func(ctx context.Context) error {
		return c.store.Append(ctx, r)
	}, true)
	if err != nil {
		return models.Record{}, err
	}
	return r, nil
}

// Update validates the draft and merges it into the record in place
func (c *Client) Update(ctx context.Context, id string, d models.Draft) (models.Record, error) {
	if err := d.Validate(); err != nil {
		return models.Record{}, err
	}
	var r models.Record
	err := c.call(ctx, models.OpUpdate, id, func(ctx context.Context) error {
		var err error
		r, err = c.store.Replace(ctx, id, d)
		return err
	}, true)
	return r, err
}

// Remove deletes the record and returns it with the index it occupied
func (c *Client) Remove(ctx context.Context, id string) (models.DeletedRecord, error) {
	var deleted models.DeletedRecord
	err := c.call(ctx, models.OpRemove, id, func(ctx context.Context) error {
		r, index, err := c.store.Remove(ctx, id)
		if err != nil {
			return err
		}
		deleted = models.DeletedRecord{Record: r, Index: index, DeletedAt: c.now()}
		return nil
	}, true)
	return deleted, err
}

// Restore puts a removed record back at its captured index
func (c *Client) Restore(ctx context.Context, d models.DeletedRecord) (models.Record, error) {
	err := c.call(ctx, models.OpRestore, d.Record.ID, func(ctx context.Context) error {
		return c.store.Insert(ctx, d.Index, d.Record)
	}, true)
	if err != nil {
		return models.Record{}, err
	}
	return d.Record, nil
}

// call marks op as pending, optionally waits the latency, runs fn and logs
// the outcome. Successful mutations log at info, everything else at debug. A context cancelled during the wait skips fn entirely.
func (c *Client) call(ctx context.Context, op models.Op, id string, fn func(ctx context.Context) error, delay bool) error {
	done := c.begin(op)
	defer done()

	start := time.Now()
	var err error
	if delay {
		err = c.wait(ctx)
	}
	if err == nil {
		err = fn(ctx)
	}
	c.metrics.RecordCall(op, err)

	fields := []zap.Field{
		zap.Stringer("op", op),
		zap.Duration("took", time.Since(start)),
	}
	if id != "" {
		fields = append(fields, zap.String("id", id))
	}
	switch {
	case err != nil:
		c.log.Debug("api call failed", append(fields, zap.Error(err))...)
	case op.IsMutation():
		c.log.Info("api call", fields...)
	default:
		c.log.Debug("api call", fields...)
	}
	return err
}

func (c *Client) begin(op models.Op) func() {
	c.mu.Lock()
	c.pending[op]++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.pending[op]--
			if c.pending[op] <= 0 {
				delete(c.pending, op)
			}
			c.mu.Unlock()
		})
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
