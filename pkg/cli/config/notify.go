package config

import (
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/infra/notify"
	"github.com/urfave/cli/v3"
)

// Notify holds notification configuration
type Notify struct {
	SlackWebhookURL string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook for run summaries (empty disables)",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("PAPERWATCH_SLACK_WEBHOOK_URL"),
		},
	}
}

// Notifier creates the configured notifier; nil when disabled
func (c *Notify) Notifier() interfaces.Notifier {
	if c.SlackWebhookURL == "" {
		return nil
	}
	return notify.NewSlack(c.SlackWebhookURL)
}
