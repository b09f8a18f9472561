package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
)

// LoadWatchConfig reads the TOML watch config from path. An empty path
// returns the built-in defaults. Fields absent from the file fall back to
// their defaults as well.
func LoadWatchConfig(path string) (*model.WatchConfig, error) {
	watch := model.DefaultWatchConfig()
	if path == "" {
		return watch, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read watch config", goerr.V("path", path))
	}

	var loaded model.WatchConfig
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, goerr.Wrap(err, "failed to parse watch config", goerr.V("path", path))
	}

	if len(loaded.Queries) > 0 {
		watch.Queries = loaded.Queries
	}
	if len(loaded.Frameworks) > 0 {
		watch.Frameworks = loaded.Frameworks
	}
	if len(loaded.Files) > 0 {
		watch.Files = loaded.Files
	}
	if len(loaded.Chapters) > 0 {
		watch.Chapters = loaded.Chapters
	}
	if loaded.Latex != "" {
		watch.Latex = loaded.Latex
	}
	if loaded.Issue.TitlePrefix != "" {
		watch.Issue.TitlePrefix = loaded.Issue.TitlePrefix
	}
	if len(loaded.Issue.Labels) > 0 {
		watch.Issue.Labels = loaded.Issue.Labels
	}

	return watch, nil
}
