package amdm

import (
	"time"
)

// LyricsResult represents the extracted lyrics result
type LyricsResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Lines     []string  `json:"lines"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SectionType represents different song sections
type SectionType string

const (
	SectionVerse  SectionType = "Куплет"
	SectionChorus SectionType = "Припев"
	SectionBridge SectionType = "Переход"
	SectionIntro  SectionType = "Вступление"
	SectionSolo   SectionType = "Проигрыш"
	SectionOutro  SectionType = "Кода"
)

// Marker is how a section header appears in the page text, e.g. "[Куплет]:".
func (s SectionType) Marker() string {
	return "[" + string(s) + "]:"
}

// ProcessingConfig holds configuration for text processing
type ProcessingConfig struct {
	AllowedSections  []SectionType
	UnwantedSections []SectionType
	MaxLineBreaks    int
}

func DefaultConfig() *ProcessingConfig {
	return &ProcessingConfig{
		AllowedSections:  []SectionType{SectionVerse, SectionChorus, SectionBridge},
		UnwantedSections: []SectionType{SectionIntro, SectionSolo, SectionOutro},
		MaxLineBreaks:    3,
	}
}
