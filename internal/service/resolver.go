package service

import (
	"fmt"
	"strings"

	"tangkhul/internal/confidence"
	"tangkhul/internal/config"
	"tangkhul/internal/domain"
	"tangkhul/internal/repository"
	"tangkhul/internal/textnorm"

	"go.uber.org/zap"
)

// Resolver runs the translation match cascade: cache lookup, exact match,
// consensus match, similarity match, partial word-level match. Stages run in
// strict priority order and the first success wins; a storage failure at any
// stage except the last degrades to a miss for that stage.
type Resolver struct {
	entries   repository.EntryRepository
	consensus repository.ConsensusRepository
	cache     repository.CacheRepository
	model     *confidence.Model
	cfg       config.Scoring
	logger    *zap.Logger
	stages    []matchStage
}

// query is one resolution request after validation and normalization
type query struct {
	raw        string
	normalized string
	hash       string
	tokens     []string
	sourceLang string
	targetLang string
}

// matchStage is one pluggable step of the cascade. try returns (nil, nil) on
// a miss; a non-nil result stops the cascade.
type matchStage struct {
	name domain.Method
	try  func(q *query) (*domain.Result, error)
}

// NewResolver creates a resolver with the standard five-stage cascade
func NewResolver(
	entries repository.EntryRepository,
	consensus repository.ConsensusRepository,
	cache repository.CacheRepository,
	cfg config.Scoring,
	logger *zap.Logger,
) *Resolver {
	r := &Resolver{
		entries:   entries,
		consensus: consensus,
		cache:     cache,
		model:     confidence.NewModel(cfg),
		cfg:       cfg,
		logger:    logger,
	}
	r.stages = []matchStage{
		{name: domain.MethodCacheHit, try: r.tryCache},
		{name: domain.MethodExactMatch, try: r.tryExact},
		{name: domain.MethodConsensus, try: r.tryConsensus},
		{name: domain.MethodSimilarity, try: r.trySimilarity},
		{name: domain.MethodPartial, try: r.tryPartial},
	}
	return r
}

// Resolve returns the best stored translation for the text, or an error:
// ValidationError for malformed input, ErrNoData when the corpus is empty,
// NotFoundError (with suggestions) when nothing matched, and
// ErrStorageUnavailable when storage failed with no stage left to fall to.
func (r *Resolver) Resolve(text, sourceLang, targetLang string) (*domain.Result, error) {
	q, err := r.buildQuery(text, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	for i, stage := range r.stages {
		result, err := stage.try(q)
		if err != nil {
			if i == len(r.stages)-1 {
				return nil, fmt.Errorf("%s stage: %w: %v", stage.name, domain.ErrStorageUnavailable, err)
			}
			// Degrade: a broken stage is a miss, the next stage may still answer
			r.logger.Warn("cascade stage failed, continuing",
				zap.String("stage", string(stage.name)),
				zap.Error(err),
			)
			continue
		}
		if result == nil {
			continue
		}

		if stage.name != domain.MethodCacheHit && stage.name != domain.MethodPartial {
			r.persistToCache(q, result)
		}

		return result, nil
	}

	return nil, r.exhausted(q)
}

func (r *Resolver) buildQuery(text, sourceLang, targetLang string) (*query, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ValidationError{Field: "text"}
	}
	if sourceLang == "" {
		return nil, &domain.ValidationError{Field: "source_language"}
	}
	if targetLang == "" {
		return nil, &domain.ValidationError{Field: "target_language"}
	}

	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return nil, &domain.ValidationError{Field: "text"}
	}

	return &query{
		raw:        strings.TrimSpace(text),
		normalized: normalized,
		hash:       textnorm.Hash(text),
		tokens:     strings.Fields(normalized),
		sourceLang: sourceLang,
		targetLang: targetLang,
	}, nil
}

// persistToCache memoizes a successful non-partial resolution. Cache write
// failures never fail the resolution.
func (r *Resolver) persistToCache(q *query, result *domain.Result) {
	entry := &domain.CacheEntry{
		TextHash:       q.hash,
		SourceLanguage: q.sourceLang,
		TargetLanguage: q.targetLang,
		TranslatedText: result.TranslatedText,
		Confidence:     result.Confidence,
		Method:         result.Method,
		Metadata:       result.Metadata,
	}
	if err := r.cache.Upsert(entry); err != nil {
		r.logger.Warn("cache write failed",
			zap.String("hash", q.hash),
			zap.Error(err),
		)
	}
}

// exhausted builds the terminal failure after every stage missed: an empty
// corpus is reported distinctly from an ordinary not-found.
func (r *Resolver) exhausted(q *query) error {
	count, err := r.entries.CountApproved(q.sourceLang, q.targetLang)
	if err == nil && count == 0 {
		return domain.ErrNoData
	}

	return &domain.NotFoundError{Suggestions: r.suggest(q)}
}

// suggest re-runs the similarity scan at the low suggestion threshold for
// "did you mean" candidates. Best effort: storage errors yield no suggestions.
func (r *Resolver) suggest(q *query) []domain.Alternative {
	pool, err := r.entries.FindCandidates(q.sourceLang, q.targetLang, r.cfg.CandidateMinConfidence, r.cfg.PoolSize)
	if err != nil {
		r.logger.Warn("suggestion scan failed", zap.Error(err))
		return nil
	}

	scored := rankBySimilarity(q.normalized, pool, r.cfg.SuggestionThreshold)

	var suggestions []domain.Alternative
	for i, c := range scored {
		if i == maxAlternatives {
			break
		}
		suggestions = append(suggestions, domain.Alternative{
			Text:       c.entry.TargetText,
			Confidence: r.model.Score(domain.MethodSimilarity, confidence.Params{Similarity: c.similarity}),
			Source:     c.entry.SourceText,
		})
	}

	return suggestions
}
