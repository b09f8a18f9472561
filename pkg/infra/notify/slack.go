package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/slack-go/slack"
)

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a notifier posting run summaries to a Slack incoming
// webhook
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

// NotifyRun posts a short summary of the run findings
func (n *slackNotifier) NotifyRun(ctx context.Context, findings *model.Findings, issueURL string) error {
	text := fmt.Sprintf(
		"Update run `%s` finished: %d new papers, %d framework updates, %d broken links, %d suggestions",
		findings.RunID,
		len(findings.NewPapers),
		len(findings.FrameworkUpdates),
		len(findings.BrokenLinks),
		len(findings.ContentSuggestions),
	)
	if issueURL != "" {
		text += "\nReport issue: " + issueURL
	}

	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack notification")
	}

	return nil
}
