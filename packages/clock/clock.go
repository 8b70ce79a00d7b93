package clock

import (
	"context"
	"math/rand"
	"time"

	"github.com/beevik/ntp"
	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

const (
	maxTries = 3

	// DefaultSyncInterval is the interval in which a running Clock queries the NTP pools to counter drift.
	DefaultSyncInterval = 30 * time.Minute
)

// QueryFunc queries the NTP server at the given host.
type QueryFunc func(host string) (*ntp.Response, error)

// Clock is a local clock that is corrected by the offset reported by a set of NTP pools. Deadlines of new transactions
// are derived from it, so that they are accepted by nodes even if the local time drifts.
type Clock struct {
	pools  []string
	query  QueryFunc
	offset *atomic.Duration
	synced *atomic.Bool
}

// New creates a new Clock that synchronizes with the given NTP pools.
func New(pools []string, options ...Option) *Clock {
	clock := &Clock{
		pools:  append([]string(nil), pools...),
		query:  ntp.Query,
		offset: atomic.NewDuration(0),
		synced: atomic.NewBool(false),
	}
	for _, option := range options {
		option(clock)
	}

	return clock
}

// Sync queries randomly selected pools until one of them answers (at most three times) and stores the reported
// offset.
func (c *Clock) Sync() (err error) {
	if len(c.pools) == 0 {
		return errors.Errorf("at least 1 NTP pool needs to be provided to synchronize the clock: %w", faults.ErrState)
	}

	for t := maxTries; t > 0; t-- {
		host := c.pools[rand.Intn(len(c.pools))]

		response, queryErr := c.query(host)
		if queryErr == nil {
			queryErr = response.Validate()
		}
		if queryErr == nil {
			c.offset.Store(response.ClockOffset)
			c.synced.Store(true)
			return nil
		}

		err = errors.CombineErrors(err, errors.Wrapf(queryErr, "failed to query %s", host))
	}

	return errors.Wrap(err, "failed to synchronize clock")
}

// Run synchronizes the Clock immediately and then in the given interval until the context is done. Failed
// synchronizations are passed to the error handler (if any) and keep the previous offset.
func (c *Clock) Run(ctx context.Context, interval time.Duration, errorHandler func(error)) {
	handle := func(err error) {
		if err != nil && errorHandler != nil {
			errorHandler(err)
		}
	}

	handle(c.Sync())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			handle(c.Sync())
		}
	}
}

// Now returns the corrected current time.
func (c *Clock) Now() time.Time {
	return time.Now().Add(c.offset.Load())
}

// Offset returns the last offset reported by an NTP pool.
func (c *Clock) Offset() time.Duration {
	return c.offset.Load()
}

// Synced returns true if at least one synchronization succeeded.
func (c *Clock) Synced() bool {
	return c.synced.Load()
}

// Option configures a Clock.
type Option func(clock *Clock)

// WithQueryFunc replaces the function that queries the NTP servers.
func WithQueryFunc(query QueryFunc) Option {
	return func(clock *Clock) {
		clock.query = query
	}
}
