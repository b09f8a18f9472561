package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds OpenAI LLM configuration
type OpenAI struct {
	APIKey string
	// ScoringModel is the cheap model used for per-paper relevance calls
	ScoringModel string
	// SuggestionModel is the stronger model used for content suggestions
	SuggestionModel string
}

// Flags returns CLI flags for OpenAI configuration
func (c *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Required:    true,
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("PAPERWATCH_OPENAI_API_KEY", "OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "openai-scoring-model",
			Usage:       "Model used for paper relevance scoring",
			Value:       "gpt-4o-mini",
			Destination: &c.ScoringModel,
			Sources:     cli.EnvVars("PAPERWATCH_OPENAI_SCORING_MODEL"),
		},
		&cli.StringFlag{
			Name:        "openai-suggestion-model",
			Usage:       "Model used for content improvement suggestions",
			Value:       "gpt-4o",
			Destination: &c.SuggestionModel,
			Sources:     cli.EnvVars("PAPERWATCH_OPENAI_SUGGESTION_MODEL"),
		},
	}
}

// ScoringClient creates the LLM client for relevance scoring
func (c *OpenAI) ScoringClient(ctx context.Context) (gollem.LLMClient, error) {
	client, err := openai.New(ctx, c.APIKey, openai.WithModel(c.ScoringModel))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scoring LLM client")
	}
	return client, nil
}

// SuggestionClient creates the LLM client for content suggestions
func (c *OpenAI) SuggestionClient(ctx context.Context) (gollem.LLMClient, error) {
	client, err := openai.New(ctx, c.APIKey, openai.WithModel(c.SuggestionModel))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create suggestion LLM client")
	}
	return client, nil
}
