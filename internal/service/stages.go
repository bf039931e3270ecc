package service

import (
	"fmt"
	"sort"
	"strings"

	"tangkhul/internal/confidence"
	"tangkhul/internal/domain"
	"tangkhul/internal/textnorm"

	"go.uber.org/zap"
)

const (
	maxAlternatives  = 3
	minPartialTokens = 2
)

// tryCache serves a memoized resolution. The stored confidence is returned
// as-is, never recomputed.
func (r *Resolver) tryCache(q *query) (*domain.Result, error) {
	entry, err := r.cache.Get(q.hash, q.sourceLang, q.targetLang)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	// Hit bookkeeping is an analytics signal; losing it is not worth a miss
	if err := r.cache.RecordHit(q.hash, q.sourceLang, q.targetLang); err != nil {
		r.logger.Warn("cache hit bookkeeping failed",
			zap.String("hash", q.hash),
			zap.Error(err),
		)
	}

	return &domain.Result{
		TranslatedText: entry.TranslatedText,
		Confidence:     entry.Confidence,
		Method:         domain.MethodCacheHit,
		Metadata: map[string]any{
			"cached_method": string(entry.Method),
			"hit_count":     entry.HitCount + 1,
		},
	}, nil
}

// tryExact matches the normalized query against approved entries
func (r *Resolver) tryExact(q *query) (*domain.Result, error) {
	entry, err := r.entries.FindExact(q.normalized, q.sourceLang, q.targetLang)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	score := r.model.Score(domain.MethodExactMatch, confidence.Params{
		GrammarMatch: r.grammarMatch(entry, q),
		Golden:       entry.Golden,
	})

	return &domain.Result{
		TranslatedText: entry.TargetText,
		Confidence:     score,
		Method:         domain.MethodExactMatch,
		Metadata: map[string]any{
			"entry_id": entry.ID,
			"golden":   entry.Golden,
		},
	}, nil
}

// tryConsensus matches the raw query text against aggregated community
// submissions with sufficient weighted agreement
func (r *Resolver) tryConsensus(q *query) (*domain.Result, error) {
	record, err := r.consensus.FindBest(q.raw, q.sourceLang, r.cfg.ConsensusMinScore)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	translated := record.TangkhulText
	if q.sourceLang == "tangkhul" {
		translated = record.EnglishText
	}

	score := r.model.Score(domain.MethodConsensus, confidence.Params{
		ExpertVotes:      record.ExpertVotes,
		ReviewerVotes:    record.ReviewerVotes,
		ContributorVotes: record.ContributorVotes,
		SubmissionCount:  record.SubmissionCount,
		Golden:           record.Golden,
	})

	return &domain.Result{
		TranslatedText: translated,
		Confidence:     score,
		Method:         domain.MethodConsensus,
		Metadata: map[string]any{
			"submission_count": record.SubmissionCount,
			"agreement_score":  record.AgreementScore,
		},
	}, nil
}

// scoredCandidate pairs a pool entry with its similarity to the query
type scoredCandidate struct {
	entry      domain.TranslationEntry
	similarity float64
}

// rankBySimilarity keeps pool entries at or above the threshold, ordered by
// similarity, then usage frequency, then target text for full determinism
func rankBySimilarity(normalized string, pool []domain.TranslationEntry, threshold float64) []scoredCandidate {
	var scored []scoredCandidate
	for _, e := range pool {
		sim := textnorm.Similarity(normalized, e.NormalizedSource)
		if sim >= threshold {
			scored = append(scored, scoredCandidate{entry: e, similarity: sim})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].similarity != scored[j].similarity {
			return scored[i].similarity > scored[j].similarity
		}
		if scored[i].entry.FrequencyTag != scored[j].entry.FrequencyTag {
			return scored[i].entry.FrequencyTag > scored[j].entry.FrequencyTag
		}
		return scored[i].entry.TargetText < scored[j].entry.TargetText
	})

	return scored
}

// trySimilarity scans the candidate pool for near matches
func (r *Resolver) trySimilarity(q *query) (*domain.Result, error) {
	pool, err := r.entries.FindCandidates(q.sourceLang, q.targetLang, r.cfg.CandidateMinConfidence, r.cfg.PoolSize)
	if err != nil {
		return nil, err
	}

	scored := rankBySimilarity(q.normalized, pool, r.cfg.SimilarityThreshold)
	if len(scored) == 0 {
		return nil, nil
	}

	best := scored[0]
	score := r.model.Score(domain.MethodSimilarity, confidence.Params{
		Similarity:   best.similarity,
		GrammarMatch: r.grammarMatch(&best.entry, q),
		Golden:       best.entry.Golden,
	})

	var alternatives []domain.Alternative
	for _, c := range scored[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, domain.Alternative{
			Text:       c.entry.TargetText,
			Confidence: r.model.Score(domain.MethodSimilarity, confidence.Params{Similarity: c.similarity, Golden: c.entry.Golden}),
			Source:     c.entry.SourceText,
		})
	}

	return &domain.Result{
		TranslatedText: best.entry.TargetText,
		Confidence:     score,
		Method:         domain.MethodSimilarity,
		Alternatives:   alternatives,
		Metadata: map[string]any{
			"similarity":     best.similarity,
			"matched_source": best.entry.SourceText,
		},
	}, nil
}

// tryPartial assembles a word-by-word translation when no whole-phrase match
// exists. Tokens without a single-word entry stay in the output bracketed.
// Partial results are query-specific substitutions, not reusable facts, so
// the resolver never caches them.
func (r *Resolver) tryPartial(q *query) (*domain.Result, error) {
	if len(q.tokens) < minPartialTokens {
		return nil, nil
	}

	parts := make([]string, 0, len(q.tokens))
	var untranslated []string
	matched := 0

	for _, token := range q.tokens {
		entry, err := r.entries.FindWord(token, q.sourceLang, q.targetLang)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			parts = append(parts, fmt.Sprintf("[%s]", token))
			untranslated = append(untranslated, token)
			continue
		}
		parts = append(parts, entry.TargetText)
		matched++
	}

	if matched == 0 {
		return nil, nil
	}

	coverage := float64(matched) / float64(len(q.tokens))
	score := r.model.Score(domain.MethodPartial, confidence.Params{Coverage: coverage})

	return &domain.Result{
		TranslatedText: strings.Join(parts, " "),
		Confidence:     score,
		Method:         domain.MethodPartial,
		Metadata: map[string]any{
			"coverage":       coverage,
			"matched_tokens": matched,
			"total_tokens":   len(q.tokens),
			"untranslated":   untranslated,
		},
	}, nil
}

// grammarMatch reports whether a candidate's tagged metadata agrees with the
// query: it carries part-of-speech tags and its stored word count matches the
// query's token count
func (r *Resolver) grammarMatch(e *domain.TranslationEntry, q *query) bool {
	return e.GrammarTags != "" && e.WordCount == len(q.tokens)
}
