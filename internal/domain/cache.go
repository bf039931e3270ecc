package domain

import "time"

// CacheEntry is a memoized resolution result keyed by the SHA-256 of the
// normalized query plus the language pair. At most one entry exists per
// (hash, source, target) triple.
type CacheEntry struct {
	ID             int
	TextHash       string
	SourceLanguage string
	TargetLanguage string
	TranslatedText string
	Confidence     int
	Method         Method
	HitCount       int
	LastUsedAt     time.Time
	Metadata       map[string]any
	CreatedAt      time.Time
}
