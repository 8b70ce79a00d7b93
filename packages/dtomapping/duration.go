// Package dtomapping contains the helpers that translate values reported by a node into domain values.
package dtomapping

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/nemtech/catapult-sdk-go/packages/faults"
)

var serverDurationPattern = regexp.MustCompile(`([0-9]+)([hdms]+)[:\s]?$`)

var serverDurationUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
}

// ParseServerDuration parses a duration from the configuration of a node, e.g. "1000ms", "15s", "5m", "2h" or "10d".
// Single quotes (used by the node as digit separators) are ignored. Only the trailing "<digits><unit>" segment of the
// value is taken into account, so "1h30m" yields 30 minutes.
func ParseServerDuration(serverValue string) (time.Duration, error) {
	preprocessedValue := strings.TrimSpace(strings.ReplaceAll(serverValue, "'", ""))

	matches := serverDurationPattern.FindStringSubmatch(preprocessedValue)
	if len(matches) != 3 {
		return 0, errors.Errorf("duration value format of '%s' is not recognized: %w", serverValue, faults.ErrFormat)
	}

	unit, exists := serverDurationUnits[matches[2]]
	if !exists {
		return 0, errors.Errorf("duration unit '%s' of '%s' is not recognized: %w", matches[2], serverValue, faults.ErrFormat)
	}

	amount, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || amount > math.MaxInt64/int64(unit) {
		return 0, errors.Errorf("duration value '%s' is out of range: %w", serverValue, faults.ErrFormat)
	}

	return time.Duration(amount) * unit, nil
}
