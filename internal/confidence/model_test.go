package confidence

import (
	"testing"

	"tangkhul/internal/domain"
	"tangkhul/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestModel_Score(t *testing.T) {
	model := NewModel(testutil.TestScoring())

	tests := []struct {
		name     string
		method   domain.Method
		params   Params
		expected int
	}{
		{
			name:     "cache hit",
			method:   domain.MethodCacheHit,
			params:   Params{},
			expected: 100,
		},
		{
			name:     "exact match",
			method:   domain.MethodExactMatch,
			params:   Params{},
			expected: 100,
		},
		{
			name:   "consensus unanimous experts",
			method: domain.MethodConsensus,
			params: Params{
				ExpertVotes:     2,
				SubmissionCount: 2,
			},
			expected: 95,
		},
		{
			name:   "consensus moderate agreement",
			method: domain.MethodConsensus,
			params: Params{
				// (1*3 + 2*2 + 1*1) / (4*3) = 8/12 ≈ 0.667 → weak
				ExpertVotes:      1,
				ReviewerVotes:    2,
				ContributorVotes: 1,
				SubmissionCount:  4,
			},
			expected: 75,
		},
		{
			name:   "consensus reviewers only",
			method: domain.MethodConsensus,
			params: Params{
				// (3*2) / (3*3) ≈ 0.667 → weak
				ReviewerVotes:   3,
				SubmissionCount: 3,
			},
			expected: 75,
		},
		{
			name:   "consensus mostly experts",
			method: domain.MethodConsensus,
			params: Params{
				// (3*3 + 1*2) / (4*3) ≈ 0.917 → strong
				ExpertVotes:     3,
				ReviewerVotes:   1,
				SubmissionCount: 4,
			},
			expected: 95,
		},
		{
			name:   "consensus moderate band",
			method: domain.MethodConsensus,
			params: Params{
				// (2*3 + 2*2) / (4*3) ≈ 0.833 → moderate
				ExpertVotes:     2,
				ReviewerVotes:   2,
				SubmissionCount: 4,
			},
			expected: 85,
		},
		{
			name:     "similarity at threshold",
			method:   domain.MethodSimilarity,
			params:   Params{Similarity: 0.8},
			expected: 91,
		},
		{
			name:     "similarity perfect",
			method:   domain.MethodSimilarity,
			params:   Params{Similarity: 1.0},
			expected: 95,
		},
		{
			name:     "partial one third coverage",
			method:   domain.MethodPartial,
			params:   Params{Coverage: 1.0 / 3.0},
			expected: 20,
		},
		{
			name:     "partial full coverage",
			method:   domain.MethodPartial,
			params:   Params{Coverage: 1.0},
			expected: 60,
		},
		{
			name:     "unknown method",
			method:   domain.Method("mystery"),
			params:   Params{},
			expected: 40,
		},
		{
			name:     "grammar boost on partial",
			method:   domain.MethodPartial,
			params:   Params{Coverage: 0.5, GrammarMatch: true},
			expected: 36,
		},
		{
			name:     "grammar boost clamps at 100",
			method:   domain.MethodSimilarity,
			params:   Params{Similarity: 0.9, GrammarMatch: true},
			expected: 100,
		},
		{
			name:     "golden floor raises low score",
			method:   domain.MethodPartial,
			params:   Params{Coverage: 0.5, Golden: true},
			expected: 95,
		},
		{
			name:     "golden floor never lowers",
			method:   domain.MethodExactMatch,
			params:   Params{Golden: true},
			expected: 100,
		},
		{
			name:   "golden floor on weak consensus",
			method: domain.MethodConsensus,
			params: Params{
				ContributorVotes: 2,
				SubmissionCount:  2,
				Golden:           true,
			},
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.Score(tt.method, tt.params))
		})
	}
}

func TestModel_Score_Deterministic(t *testing.T) {
	model := NewModel(testutil.TestScoring())
	params := Params{Similarity: 0.8312, GrammarMatch: true}

	first := model.Score(domain.MethodSimilarity, params)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, model.Score(domain.MethodSimilarity, params))
	}
}

func TestModel_Score_Bounds(t *testing.T) {
	model := NewModel(testutil.TestScoring())

	methods := []domain.Method{
		domain.MethodCacheHit, domain.MethodExactMatch, domain.MethodConsensus,
		domain.MethodSimilarity, domain.MethodPartial, domain.Method("other"),
	}
	params := []Params{
		{},
		{Similarity: 1.0, GrammarMatch: true, Golden: true},
		{Coverage: 1.0, GrammarMatch: true},
		{ExpertVotes: 10, SubmissionCount: 10, Golden: true},
		{Coverage: 0},
	}

	for _, m := range methods {
		for _, p := range params {
			score := model.Score(m, p)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestModel_AgreementRatio(t *testing.T) {
	model := NewModel(testutil.TestScoring())

	assert.Equal(t, 1.0, model.AgreementRatio(Params{ExpertVotes: 2, SubmissionCount: 2}))
	assert.Equal(t, 0.0, model.AgreementRatio(Params{}))
	assert.InDelta(t, 1.0/3.0,
		model.AgreementRatio(Params{ContributorVotes: 4, SubmissionCount: 4}), 1e-9)
}
