package notification

import (
	"errors"
	"testing"
)

func TestNormalizeTimeSlot(t *testing.T) {
	t.Run("Zero-pads short forms", func(t *testing.T) {
		got, ok := NormalizeTimeSlot("9:5")
		if !ok {
			t.Fatal("Expected 9:5 to normalize")
		}
		if got != "09:05" {
			t.Errorf("Expected 09:05, got %s", got)
		}
	})

	t.Run("Keeps canonical form", func(t *testing.T) {
		got, ok := NormalizeTimeSlot("07:30")
		if !ok || got != "07:30" {
			t.Errorf("Expected 07:30, got %s (ok=%t)", got, ok)
		}
	})

	t.Run("Clamps out-of-range values", func(t *testing.T) {
		got, ok := NormalizeTimeSlot("25:99")
		if !ok {
			t.Fatal("Expected 25:99 to normalize")
		}
		if got != "23:59" {
			t.Errorf("Expected 23:59, got %s", got)
		}
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		got, ok := NormalizeTimeSlot(" 08:00 ")
		if !ok || got != "08:00" {
			t.Errorf("Expected 08:00, got %s (ok=%t)", got, ok)
		}
	})

	t.Run("Rejects non-numeric input", func(t *testing.T) {
		for _, raw := range []string{"", "morning", "8", "8:", ":30", "ab:cd", "08-00"} {
			if _, ok := NormalizeTimeSlot(raw); ok {
				t.Errorf("Expected %q to be rejected", raw)
			}
		}
	})
}

func TestParseTimeSlots(t *testing.T) {
	t.Run("Normalizes and keeps submission order", func(t *testing.T) {
		slots, err := ParseTimeSlots([]string{"20:00", "7:30"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(slots) != 2 || slots[0] != "20:00" || slots[1] != "07:30" {
			t.Errorf("Unexpected slots: %v", slots)
		}
	})

	t.Run("Drops malformed entries silently", func(t *testing.T) {
		slots, err := ParseTimeSlots([]string{"bogus", "08:00", ""})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(slots) != 1 || slots[0] != "08:00" {
			t.Errorf("Unexpected slots: %v", slots)
		}
	})

	t.Run("Rejects duplicates after normalization", func(t *testing.T) {
		_, err := ParseTimeSlots([]string{"08:00", "8:00"})
		if err == nil {
			t.Fatal("Expected duplicate error")
		}
		var dup *DuplicateSlotError
		if !errors.As(err, &dup) {
			t.Fatalf("Expected DuplicateSlotError, got %T", err)
		}
		if dup.Slot != "08:00" {
			t.Errorf("Expected offending slot 08:00, got %s", dup.Slot)
		}
	})

	t.Run("Duplicate check runs before truncation", func(t *testing.T) {
		_, err := ParseTimeSlots([]string{"01:00", "02:00", "03:00", "04:00", "05:00", "1:00"})
		if err == nil {
			t.Fatal("Expected duplicate error for entry past the slot limit")
		}
	})

	t.Run("Truncates to the slot limit", func(t *testing.T) {
		slots, err := ParseTimeSlots([]string{"01:00", "02:00", "03:00", "04:00", "05:00", "06:00"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(slots) != 5 {
			t.Errorf("Expected 5 slots, got %d", len(slots))
		}
		if slots[4] != "05:00" {
			t.Errorf("Expected truncation to keep submission order, got %v", slots)
		}
	})
}
