package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

//go:embed prompts/relevance_system.md
var relevanceSystemPrompt string

//go:embed prompts/relevance_user.md
var relevanceUserTemplate string

// maxAbstractChars bounds the abstract portion of the scoring prompt
const maxAbstractChars = 1200

type relevanceScorer struct {
	llmClient gollem.LLMClient
	userTmpl  *template.Template
}

// NewRelevanceScorer creates a scorer that asks the LLM whether a paper
// belongs in the review
func NewRelevanceScorer(llmClient gollem.LLMClient) (*relevanceScorer, error) {
	tmpl, err := template.New("relevance").Parse(relevanceUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse relevance prompt template")
	}

	return &relevanceScorer{
		llmClient: llmClient,
		userTmpl:  tmpl,
	}, nil
}

// Score assesses one paper. The response is a JSON document matching
// model.Relevance.
func (s *relevanceScorer) Score(ctx context.Context, paper *model.Paper) (*model.Relevance, error) {
	logger := ctxlog.From(ctx)

	abstract := truncateString(paper.Abstract, maxAbstractChars)

	var buf bytes.Buffer
	if err := s.userTmpl.Execute(&buf, map[string]string{
		"Title":    paper.Title,
		"Abstract": abstract,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute relevance prompt template")
	}

	session, err := s.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(relevanceSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate relevance assessment")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("no response from LLM", goerr.V("title", paper.Title))
	}

	var relevance model.Relevance
	if err := json.Unmarshal([]byte(resp.Texts[0]), &relevance); err != nil {
		logger.Debug("unparsable relevance response", "response", resp.Texts[0])
		return nil, goerr.Wrap(err, "failed to parse relevance response",
			goerr.V("response", resp.Texts[0]))
	}

	return &relevance, nil
}
