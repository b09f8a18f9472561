package model

import "time"

// Framework is a watchlist entry for a framework whose releases are tracked
type Framework struct {
	Name string `toml:"name" json:"name"`
	// PyPI package name; empty when the framework has no PyPI distribution
	PyPI string `toml:"pypi" json:"pypi,omitempty"`
	// GitHub repository in "owner/name" form, used as fallback release source
	GitHub string `toml:"github" json:"github,omitempty"`
}

// FrameworkRelease is the latest observed release of a watched framework
type FrameworkRelease struct {
	Framework  string    `json:"framework"`
	Version    string    `json:"version"`
	ReleasedAt time.Time `json:"release_date"`
	URL        string    `json:"url,omitempty"`
	Source     string    `json:"source"` // "pypi" or "github"
}
