package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

// Storage holds artifact store configuration
type Storage struct {
	Backend   string // none, gcs or s3
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Flags returns CLI flags for artifact store configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "artifact-backend",
			Usage:       "Artifact store backend (none, gcs, s3)",
			Value:       "none",
			Destination: &c.Backend,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "artifact-bucket",
			Usage:       "Artifact store bucket",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "artifact-endpoint",
			Usage:       "S3-compatible endpoint (s3 backend)",
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "artifact-region",
			Usage:       "S3 region (s3 backend)",
			Destination: &c.Region,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_REGION"),
		},
		&cli.StringFlag{
			Name:        "artifact-access-key",
			Usage:       "S3 access key (s3 backend)",
			Destination: &c.AccessKey,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_ACCESS_KEY"),
		},
		&cli.StringFlag{
			Name:        "artifact-secret-key",
			Usage:       "S3 secret key (s3 backend)",
			Destination: &c.SecretKey,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_SECRET_KEY"),
		},
		&cli.BoolFlag{
			Name:        "artifact-ssl",
			Usage:       "Use TLS for the S3 endpoint",
			Value:       true,
			Destination: &c.UseSSL,
			Sources:     cli.EnvVars("PAPERWATCH_ARTIFACT_SSL"),
		},
	}
}

// Store creates the configured artifact store; nil when disabled
func (c *Storage) Store(ctx context.Context) (interfaces.ArtifactStore, error) {
	switch c.Backend {
	case "", "none":
		return nil, nil
	case "gcs":
		if c.Bucket == "" {
			return nil, goerr.New("artifact-bucket is required for the gcs backend")
		}
		return storage.NewGCS(ctx, c.Bucket)
	case "s3":
		if c.Bucket == "" || c.Endpoint == "" {
			return nil, goerr.New("artifact-bucket and artifact-endpoint are required for the s3 backend")
		}
		return storage.NewS3(ctx, storage.S3Config{
			Endpoint:  c.Endpoint,
			Bucket:    c.Bucket,
			Region:    c.Region,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			UseSSL:    c.UseSSL,
		})
	default:
		return nil, goerr.New("unknown artifact backend", goerr.V("backend", c.Backend))
	}
}
