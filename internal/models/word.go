package models

import "strings"

// DefaultListName is the reserved list every word without an explicit list
// belongs to. It is never renamed or deleted.
const DefaultListName = "未分類"

type WordType string

const (
	WordTypeWord  WordType = "word"
	WordTypeIdiom WordType = "idiom"
)

// Word is one registered vocabulary entry. LearnedAt is a "YYYY-MM-DD" date;
// empty means the word is still under review.
type Word struct {
	ID        string   `json:"id"`
	Word      string   `json:"word"`
	Meaning   string   `json:"meaning,omitempty"`
	Example   string   `json:"example,omitempty"`
	Question  string   `json:"question,omitempty"`
	Answer    string   `json:"answer,omitempty"`
	ListName  string   `json:"listName,omitempty"`
	Type      WordType `json:"type,omitempty"`
	LearnedAt string   `json:"learnedAt,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// WordUpdate carries a partial edit of a word. Nil fields are left untouched;
// a ListName update is normalized before it is stored.
type WordUpdate struct {
	Word     *string `json:"word,omitempty"`
	Meaning  *string `json:"meaning,omitempty"`
	Example  *string `json:"example,omitempty"`
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
	ListName *string `json:"listName,omitempty"`
}

// NormalizeListName maps empty or blank list names to DefaultListName.
// Every persist and every comparison goes through this.
func NormalizeListName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultListName
	}
	return trimmed
}

// EffectiveType treats anything that is not explicitly an idiom as a word,
// so stale or garbage type values stay filterable.
func (w Word) EffectiveType() WordType {
	if w.Type == WordTypeIdiom {
		return WordTypeIdiom
	}
	return WordTypeWord
}

// IsLearned reports whether the word has been marked as learned.
func (w Word) IsLearned() bool {
	return w.LearnedAt != ""
}
