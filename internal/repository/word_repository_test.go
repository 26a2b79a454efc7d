package repository

import (
	"testing"

	"braincraft/internal/models"
)

func TestWordRepositoryAddAndList(t *testing.T) {
	repo := NewWordRepository(testLogger(), newFakeDynamo(), "vocab")

	first, err := repo.AddWord("U1", models.Word{Word: "resilience", Meaning: "回復力"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first.ID == "" {
		t.Error("Expected an assigned ID")
	}
	if first.ListName != models.DefaultListName {
		t.Errorf("Expected default list, got %s", first.ListName)
	}
	if first.Type != models.WordTypeWord {
		t.Errorf("Expected word type, got %s", first.Type)
	}

	second, err := repo.AddWord("U1", models.Word{Word: "get back to", Type: models.WordTypeIdiom, ListName: "  Business  "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.ListName != "Business" {
		t.Errorf("Expected trimmed list name, got %q", second.ListName)
	}

	words, err := repo.ListWords("U1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(words))
	}
	if words[0].Word != "get back to" {
		t.Errorf("Expected newest word first, got %s", words[0].Word)
	}
}

func TestWordRepositoryLifecycle(t *testing.T) {
	repo := NewWordRepository(testLogger(), newFakeDynamo(), "vocab")
	word, err := repo.AddWord("U1", models.Word{Word: "pragmatic"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("Update edits fields in place", func(t *testing.T) {
		meaning := "実用的な"
		list := ""
		found, err := repo.UpdateWord("U1", word.ID, models.WordUpdate{Meaning: &meaning, ListName: &list})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected the word to be found")
		}
		words, _ := repo.ListWords("U1")
		if words[0].Meaning != "実用的な" {
			t.Errorf("Expected updated meaning, got %q", words[0].Meaning)
		}
		if words[0].ListName != models.DefaultListName {
			t.Errorf("Expected empty list name to normalize, got %q", words[0].ListName)
		}
	})

	t.Run("Learn stamps a date", func(t *testing.T) {
		found, err := repo.MarkWordLearned("U1", word.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !found {
			t.Fatal("Expected the word to be found")
		}
		words, _ := repo.ListWords("U1")
		if !words[0].IsLearned() {
			t.Error("Expected the word to be learned")
		}
	})

	t.Run("Unknown ID reports not found", func(t *testing.T) {
		found, err := repo.UpdateWord("U1", "missing", models.WordUpdate{})
		if err != nil || found {
			t.Errorf("Expected not found without error, got found=%t err=%v", found, err)
		}
	})

	t.Run("Delete removes the word", func(t *testing.T) {
		found, err := repo.DeleteWord("U1", word.ID)
		if err != nil || !found {
			t.Fatalf("Expected deletion, got found=%t err=%v", found, err)
		}
		words, _ := repo.ListWords("U1")
		if len(words) != 0 {
			t.Errorf("Expected empty collection, got %d", len(words))
		}
	})
}

func TestWordRepositoryLists(t *testing.T) {
	repo := NewWordRepository(testLogger(), newFakeDynamo(), "vocab")
	for _, w := range []models.Word{
		{Word: "a", ListName: "Travel"},
		{Word: "b", ListName: "Business"},
		{Word: "c", ListName: "Business"},
		{Word: "d"},
	} {
		if _, err := repo.AddWord("U1", w); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	t.Run("Names put the default list first", func(t *testing.T) {
		names, err := repo.ListNames("U1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(names) != 3 || names[0] != models.DefaultListName || names[1] != "Business" || names[2] != "Travel" {
			t.Errorf("Unexpected names: %v", names)
		}
	})

	t.Run("Rename moves every word in the list", func(t *testing.T) {
		count, err := repo.RenameList("U1", "Business", "Work")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 words renamed, got %d", count)
		}
		names, _ := repo.ListNames("U1")
		for _, name := range names {
			if name == "Business" {
				t.Error("Old list name still present")
			}
		}
	})

	t.Run("Delete reassigns words to the default list", func(t *testing.T) {
		count, err := repo.DeleteList("U1", "Work")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 words moved, got %d", count)
		}
		words, _ := repo.ListWords("U1")
		for _, w := range words {
			if w.ListName == "Work" {
				t.Error("Deleted list still referenced")
			}
		}
	})

	t.Run("Default list cannot be deleted", func(t *testing.T) {
		count, err := repo.DeleteList("U1", models.DefaultListName)
		if err != nil || count != 0 {
			t.Errorf("Expected no-op, got count=%d err=%v", count, err)
		}
	})
}
