package domain

// Method identifies which cascade stage produced a result
type Method string

const (
	MethodCacheHit   Method = "cache_hit"
	MethodExactMatch Method = "exact_match"
	MethodConsensus  Method = "consensus"
	MethodSimilarity Method = "similarity"
	MethodPartial    Method = "partial"
)

// Alternative is a runner-up candidate offered alongside a similarity result,
// or a "did you mean" suggestion attached to a not-found outcome
type Alternative struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
	Source     string `json:"source"`
}

// Result is a successful resolution
type Result struct {
	TranslatedText string
	Confidence     int
	Method         Method
	Alternatives   []Alternative
	Metadata       map[string]any
}

// RequestLog is one analytics record per resolution attempt
type RequestLog struct {
	Query          string
	SourceLanguage string
	TargetLanguage string
	Method         Method // empty on failure
	Confidence     int
	LatencyMs      int64
	CacheHit       bool
	UserID         string // optional caller identity
	Failed         bool
}
