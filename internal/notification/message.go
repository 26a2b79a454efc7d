package notification

import (
	"strings"

	"braincraft/internal/models"
)

const translationLabel = "（訳）"

// BuildMessage assembles the reminder text for one user. Learned words, words
// in notification-disabled lists and (when idiomEnabled is false) idioms are
// excluded. A list name missing from listPrefs counts as enabled. An empty
// result means there is nothing to send; the caller still marks the slot as
// sent so the tick is not retried.
//
// Each word renders as a block: the word itself, then meaning and example
// lines when present. An example that embeds a translation after the
// （訳） marker is split into separate example and translation lines.
func BuildMessage(words []models.Word, listPrefs map[string]bool, idiomEnabled bool) string {
	blocks := make([]string, 0, len(words))
	for _, w := range words {
		if w.IsLearned() {
			continue
		}
		if enabled, ok := listPrefs[models.NormalizeListName(w.ListName)]; ok && !enabled {
			continue
		}
		if !idiomEnabled && w.EffectiveType() == models.WordTypeIdiom {
			continue
		}
		blocks = append(blocks, formatWordBlock(w))
	}
	return strings.Join(blocks, "\n\n")
}

func formatWordBlock(w models.Word) string {
	parts := []string{"✅" + w.Word}
	if w.Meaning != "" {
		parts = append(parts, "（意味）"+w.Meaning)
	}
	if w.Example != "" {
		if idx := strings.Index(w.Example, translationLabel); idx >= 0 {
			example := strings.TrimSpace(w.Example[:idx])
			translation := strings.TrimSpace(w.Example[idx+len(translationLabel):])
			if example != "" {
				parts = append(parts, "（例文）"+example)
			}
			if translation != "" {
				parts = append(parts, translationLabel+translation)
			}
		} else {
			parts = append(parts, "（例文）"+w.Example)
		}
	}
	return strings.Join(parts, "\n")
}
