package catapult

import (
	"time"
)

// DefaultDeadlineLifetime is the lifetime of a transaction if nothing else is specified.
const DefaultDeadlineLifetime = 2 * time.Hour

// Deadline is the point in time until a transaction can be included in a block, in milliseconds since the epoch of
// the network (the epoch adjustment a node reports relative to the unix epoch).
type Deadline uint64

// NewDeadline creates the Deadline that lies the given lifetime after now.
func NewDeadline(now time.Time, lifetime time.Duration, epochAdjustment time.Duration) Deadline {
	deadline := now.Add(lifetime).UnixMilli() - epochAdjustment.Milliseconds()
	if deadline < 0 {
		return 0
	}

	return Deadline(deadline)
}

// Time returns the Deadline as an absolute point in time.
func (d Deadline) Time(epochAdjustment time.Duration) time.Time {
	return time.UnixMilli(int64(d) + epochAdjustment.Milliseconds())
}

// Expired returns true if the Deadline lies before the given point in time.
func (d Deadline) Expired(now time.Time, epochAdjustment time.Duration) bool {
	return d.Time(epochAdjustment).Before(now)
}
