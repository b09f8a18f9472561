package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

type frameworkChecker struct {
	registry     interfaces.RegistryClient
	githubClient interfaces.GitHubClient
}

// NewFrameworkChecker creates the release watcher for the framework
// watchlist. PyPI is the primary source; frameworks without a PyPI package
// fall back to their GitHub latest release.
func NewFrameworkChecker(registry interfaces.RegistryClient, githubClient interfaces.GitHubClient) *frameworkChecker {
	return &frameworkChecker{
		registry:     registry,
		githubClient: githubClient,
	}
}

// Check looks up the latest release of every watched framework. Failures
// are logged and skipped so one unreachable registry never empties the
// report.
func (c *frameworkChecker) Check(ctx context.Context, frameworks []model.Framework) []model.FrameworkRelease {
	logger := ctxlog.From(ctx)

	var releases []model.FrameworkRelease
	for _, fw := range frameworks {
		release, err := c.checkOne(ctx, fw)
		if err != nil {
			logger.Warn("framework check failed", "framework", fw.Name, "error", err)
			continue
		}
		if release == nil {
			continue
		}
		release.Framework = fw.Name
		releases = append(releases, *release)
	}

	return releases
}

func (c *frameworkChecker) checkOne(ctx context.Context, fw model.Framework) (*model.FrameworkRelease, error) {
	if fw.PyPI != "" {
		return c.registry.LatestVersion(ctx, fw.PyPI)
	}

	if fw.GitHub != "" {
		owner, repo, ok := strings.Cut(fw.GitHub, "/")
		if !ok {
			return nil, nil
		}
		return c.githubClient.LatestRelease(ctx, owner, repo)
	}

	return nil, nil
}
