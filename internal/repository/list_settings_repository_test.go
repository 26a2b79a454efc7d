package repository

import (
	"testing"

	"braincraft/internal/models"
)

func TestListSettingsRepository(t *testing.T) {
	repo := NewListSettingsRepository(testLogger(), newFakeDynamo(), "vocab")

	t.Run("Unset lists read as enabled", func(t *testing.T) {
		prefs, err := repo.GetNotificationMap("U1", []string{"Business", models.DefaultListName})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !prefs["Business"] || !prefs[models.DefaultListName] {
			t.Errorf("Expected defaults to be enabled, got %v", prefs)
		}
	})

	t.Run("Opt-out is persisted", func(t *testing.T) {
		if err := repo.SetNotificationEnabled("U1", "Business", false); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		prefs, err := repo.GetNotificationMap("U1", []string{"Business", "Travel"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if prefs["Business"] {
			t.Error("Expected Business to be disabled")
		}
		if !prefs["Travel"] {
			t.Error("Expected Travel to stay enabled")
		}
	})

	t.Run("Rename migrates the setting", func(t *testing.T) {
		if err := repo.RenameList("U1", "Business", "Work"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		prefs, _ := repo.GetNotificationMap("U1", []string{"Business", "Work"})
		if prefs["Work"] {
			t.Error("Expected the opt-out to follow the rename")
		}
		if !prefs["Business"] {
			t.Error("Expected the old name to fall back to the default")
		}
	})

	t.Run("Delete drops the setting", func(t *testing.T) {
		if err := repo.DeleteList("U1", "Work"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		prefs, _ := repo.GetNotificationMap("U1", []string{"Work"})
		if !prefs["Work"] {
			t.Error("Expected a deleted list to read as enabled again")
		}
	})
}
