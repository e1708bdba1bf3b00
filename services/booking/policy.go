package booking

import (
	"fmt"
	"strings"

	"hoardify/models"
)

// StatusPolicy decides which approval-status changes an admin may make.
type StatusPolicy string

const (
	// PolicyOpen allows any valid status from any status.
	PolicyOpen StatusPolicy = "open"
	// PolicyStrict only lets a Pending booking be approved or rejected.
	PolicyStrict StatusPolicy = "strict"
)

// ParseStatusPolicy reads a policy name; empty means open.
func ParseStatusPolicy(name string) (StatusPolicy, error) {
	switch StatusPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyOpen:
		return PolicyOpen, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown status policy %q", name)
}

// Allow reports whether moving from one status to another is permitted.
// Writing the current value again is always allowed.
func (p StatusPolicy) Allow(from, to models.BookingStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, to)
	}
	if from == to || p != PolicyStrict {
		return nil
	}
	if from == models.BookingPending && (to == models.BookingApproved || to == models.BookingRejected) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", models.ErrTransitionNotAllowed, from, to)
}
