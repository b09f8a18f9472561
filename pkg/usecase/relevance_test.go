package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/usecase"
)

func newMockLLM(response string, captured *string) *mock.LLMClientMock {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, opts ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateFunc: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
					if captured != nil && len(input) > 0 {
						if text, ok := input[0].(gollem.Text); ok {
							*captured = string(text)
						}
					}
					return &gollem.Response{Texts: []string{response}}, nil
				},
			}, nil
		},
	}
}

func TestRelevanceScorer_Score(t *testing.T) {
	ctx := context.Background()

	t.Run("parses assessment JSON", func(t *testing.T) {
		assessment := model.Relevance{
			Relevant:         true,
			Score:            8,
			Reason:           "Directly about multi-agent planning",
			SuggestedSection: "Chapter 7",
		}
		responseJSON, err := json.Marshal(assessment)
		gt.NoError(t, err)

		var prompt string
		scorer, err := usecase.NewRelevanceScorer(newMockLLM(string(responseJSON), &prompt))
		gt.NoError(t, err)

		paper := &model.Paper{
			Title:    "Planning for LLM Agents",
			Abstract: "We study planning strategies for language model agents.",
		}

		relevance, err := scorer.Score(ctx, paper)
		gt.NoError(t, err)
		gt.True(t, relevance.Relevant)
		gt.Equal(t, relevance.Score, 8)
		gt.Equal(t, relevance.SuggestedSection, "Chapter 7")

		gt.True(t, strings.Contains(prompt, paper.Title))
		gt.True(t, strings.Contains(prompt, "planning strategies"))
	})

	t.Run("long abstract is truncated in the prompt", func(t *testing.T) {
		var prompt string
		scorer, err := usecase.NewRelevanceScorer(newMockLLM(`{"relevant":false}`, &prompt))
		gt.NoError(t, err)

		paper := &model.Paper{
			Title:    "Agents Everywhere",
			Abstract: strings.Repeat("a", 5000),
		}

		_, err = scorer.Score(ctx, paper)
		gt.NoError(t, err)
		gt.True(t, len(prompt) < 2000)
	})

	t.Run("truncation never splits a rune", func(t *testing.T) {
		var prompt string
		scorer, err := usecase.NewRelevanceScorer(newMockLLM(`{"relevant":false}`, &prompt))
		gt.NoError(t, err)

		// Multi-byte abstract longer than the prompt budget
		paper := &model.Paper{
			Title:    "エージェント設計",
			Abstract: strings.Repeat("界", 1000),
		}

		_, err = scorer.Score(ctx, paper)
		gt.NoError(t, err)
		gt.True(t, utf8.ValidString(prompt))
	})

	t.Run("unparsable response is an error", func(t *testing.T) {
		scorer, err := usecase.NewRelevanceScorer(newMockLLM("not json at all", nil))
		gt.NoError(t, err)

		_, err = scorer.Score(ctx, &model.Paper{Title: "X"})
		gt.Error(t, err)
	})
}
