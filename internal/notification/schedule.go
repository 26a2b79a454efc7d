// Package notification implements the scheduled reminder core: time-slot
// handling, eligible-user selection, message assembly and the per-tick
// dispatch loop.
package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"braincraft/internal/models"
)

// Zone is the single zone all reminder scheduling is evaluated in, regardless
// of server locale. Every user's slots and the sent-tracking dates live in
// this zone.
var Zone = time.FixedZone("JST", 9*60*60)

// DuplicateSlotError reports a time-slot list that contains the same slot
// twice after normalization.
type DuplicateSlotError struct {
	Slot string
}

func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("duplicate time slot: %s", e.Slot)
}

// NormalizeTimeSlot canonicalizes a user-supplied time to zero-padded
// "HH:mm". Out-of-range numbers are clamped ("25:99" becomes "23:59");
// anything non-numeric returns ok=false.
func NormalizeTimeSlot(raw string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}
	if hour < 0 {
		hour = 0
	} else if hour > 23 {
		hour = 23
	}
	if minute < 0 {
		minute = 0
	} else if minute > 59 {
		minute = 59
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ParseTimeSlots normalizes a submitted slot list. Malformed entries are
// dropped silently, duplicates after normalization are rejected before
// truncation, and the result is capped at models.MaxTimeSlots in submission
// order.
func ParseTimeSlots(raw []string) ([]string, error) {
	normalized := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		slot, ok := NormalizeTimeSlot(r)
		if !ok {
			continue
		}
		if _, dup := seen[slot]; dup {
			return nil, &DuplicateSlotError{Slot: slot}
		}
		seen[slot] = struct{}{}
		normalized = append(normalized, slot)
	}
	if len(normalized) > models.MaxTimeSlots {
		normalized = normalized[:models.MaxTimeSlots]
	}
	return normalized, nil
}

// SlotOf formats a wall-clock time as the "HH:mm" slot string it matches.
func SlotOf(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DateOf formats a wall-clock time as the "YYYY-MM-DD" sent-tracking date.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
