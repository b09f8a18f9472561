package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

// VersionInfo carries the date-derived version stamped into the paper
type VersionInfo struct {
	Version string // YYYY.MM.DD
	DateISO string // YYYY-MM-DD
	Display string // Month D, YYYY
}

// NewVersionInfo derives version strings from a point in time
func NewVersionInfo(ts time.Time) VersionInfo {
	return VersionInfo{
		Version: ts.Format("2006.01.02"),
		DateISO: ts.Format("2006-01-02"),
		Display: ts.Format("January 2, 2006"),
	}
}

var (
	latexDatePattern      = regexp.MustCompile(`\\date\{[^}]*\}`)
	paperVersionPattern   = regexp.MustCompile(`\\newcommand\{\\paperversion\}\{[^}]*\}`)
	lastUpdatedPattern    = regexp.MustCompile(`\\newcommand\{\\lastupdated\}\{[^}]*\}`)
	documentclassPattern  = regexp.MustCompile(`(?m)^\\documentclass[^\n]*$`)
	lastUpdatedMDPattern  = regexp.MustCompile(`(?m)^\*\*Last Updated\*\*:.*$`)
	frontmatterKeyPattern = regexp.MustCompile(`(?m)^(version|last_updated|last_updated_display):.*$`)
)

type bumper struct {
	rootDir string
	now     interfaces.Clock
}

// BumperOption is a functional option for bumper configuration
type BumperOption func(*bumper)

// WithBumperClock overrides the time source, used by tests
func WithBumperClock(clock interfaces.Clock) BumperOption {
	return func(b *bumper) {
		b.now = clock
	}
}

// NewBumper creates the version stamper. rootDir is the repository
// checkout the watched files are resolved against.
func NewBumper(rootDir string, opts ...BumperOption) *bumper {
	b := &bumper{
		rootDir: rootDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run stamps the current date-based version into the LaTeX source and the
// markdown chapters. Missing files are skipped. Running twice on the same
// day leaves the files unchanged.
func (b *bumper) Run(ctx context.Context, watch *model.WatchConfig) error {
	logger := ctxlog.From(ctx)
	info := NewVersionInfo(b.now())

	logger.Info("stamping paper version", "version", info.Version, "date", info.Display)

	if watch.Latex != "" {
		path := filepath.Join(b.rootDir, watch.Latex)
		if err := b.stampLatex(path, info); err != nil {
			return goerr.Wrap(err, "failed to stamp latex source", goerr.V("file", watch.Latex))
		}
	}

	stamped := 0
	for _, chapter := range watch.Chapters {
		path := filepath.Join(b.rootDir, chapter)
		ok, err := b.stampChapter(path, info)
		if err != nil {
			return goerr.Wrap(err, "failed to stamp chapter", goerr.V("file", chapter))
		}
		if ok {
			stamped++
		}
	}

	logger.Info("version stamp complete", "version", info.Version, "chapters", stamped)
	return nil
}

// stampLatex updates \date{} and the \paperversion / \lastupdated commands
func (b *bumper) stampLatex(path string, info VersionInfo) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return goerr.Wrap(err, "failed to read latex source")
	}

	text := string(content)
	text = latexDatePattern.ReplaceAllString(text, `\date{`+info.Display+`}`)

	versionCmd := `\newcommand{\paperversion}{` + info.Version + `}`
	updatedCmd := `\newcommand{\lastupdated}{` + info.Display + `}`

	if paperVersionPattern.MatchString(text) {
		text = paperVersionPattern.ReplaceAllString(text, versionCmd)
		text = lastUpdatedPattern.ReplaceAllString(text, updatedCmd)
	} else if loc := documentclassPattern.FindStringIndex(text); loc != nil {
		text = text[:loc[1]] + "\n" + versionCmd + "\n" + updatedCmd + text[loc[1]:]
	}

	return os.WriteFile(path, []byte(text), 0644)
}

// stampChapter inserts or updates the YAML frontmatter version keys and any
// "**Last Updated**:" lines of one markdown chapter
func (b *bumper) stampChapter(path string, info VersionInfo) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to read chapter")
	}

	text := stampFrontmatter(string(content), info)
	text = lastUpdatedMDPattern.ReplaceAllString(text, "**Last Updated**: "+info.Display)

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return false, goerr.Wrap(err, "failed to write chapter")
	}

	return true, nil
}

// stampFrontmatter rewrites the version keys in an existing frontmatter
// block, or prepends a fresh block when the document has none
func stampFrontmatter(text string, info VersionInfo) string {
	block := fmt.Sprintf("---\nversion: %s\nlast_updated: %s\nlast_updated_display: %s\n---\n\n",
		info.Version, info.DateISO, info.Display)

	if !strings.HasPrefix(text, "---\n") {
		return block + text
	}

	end := strings.Index(text[4:], "\n---")
	if end < 0 {
		return block + text
	}
	end += 4 // offset of the closing delimiter

	header := text[4:end]
	rest := text[end:]

	// Drop existing version keys, then append the current ones
	header = frontmatterKeyPattern.ReplaceAllString(header, "")
	lines := make([]string, 0, 8)
	for _, line := range strings.Split(header, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	lines = append(lines,
		"version: "+info.Version,
		"last_updated: "+info.DateISO,
		"last_updated_display: "+info.Display,
	)

	return "---\n" + strings.Join(lines, "\n") + rest
}
