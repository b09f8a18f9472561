package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompts/suggestions_system.md
var suggestionsSystemPrompt string

//go:embed prompts/suggestions_user.md
var suggestionsUserTemplate string

type suggester struct {
	llmClient gollem.LLMClient
	userTmpl  *template.Template
}

// NewSuggester creates a generator of content improvement suggestions
func NewSuggester(llmClient gollem.LLMClient) (*suggester, error) {
	tmpl, err := template.New("suggestions").Parse(suggestionsUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse suggestions prompt template")
	}

	return &suggester{
		llmClient: llmClient,
		userTmpl:  tmpl,
	}, nil
}

// Suggest asks the LLM for count improvement suggestions seeded with
// excerpts of the watched files.
func (s *suggester) Suggest(ctx context.Context, contextText string, count int) ([]string, error) {
	var buf bytes.Buffer
	if err := s.userTmpl.Execute(&buf, map[string]any{
		"Context": contextText,
		"Count":   count,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute suggestions prompt template")
	}

	session, err := s.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(suggestionsSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate suggestions")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("no response from LLM")
	}

	return parseSuggestions(resp.Texts[0]), nil
}

// parseSuggestions extracts numbered or bulleted lines from the response
func parseSuggestions(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if unicode.IsDigit(rune(line[0])) || strings.HasPrefix(line, "-") {
			suggestions = append(suggestions, line)
		}
	}
	return suggestions
}
