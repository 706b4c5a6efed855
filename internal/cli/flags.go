package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/bleconsole/internal/errors"
)

// MinSpacing is the shortest delay accepted between two demo results.
const MinSpacing = 10 * time.Millisecond

// ParseSpacing parses the --spacing flag. An empty flag returns zero, which
// lets the caller spread results across the scan duration.
func ParseSpacing(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid spacing", flag),
			"Try something like 500ms, 2s, or 1m.")
	}
	if duration < MinSpacing {
		return 0, errors.New(errors.ErrConfig,
			"Spacing too short",
			fmt.Sprintf("Minimum spacing is %s so the watchdog and the panel can keep up", MinSpacing))
	}
	return duration, nil
}

// ParseCount validates a positive count flag such as --cards.
func ParseCount(name string, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("--%s must be positive, got %d", name, n),
			"Pass a count of at least 1")
	}
	return n, nil
}
