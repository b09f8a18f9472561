package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/usecase"
)

func TestNewVersionInfo(t *testing.T) {
	info := usecase.NewVersionInfo(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
	gt.Equal(t, info.Version, "2025.03.15")
	gt.Equal(t, info.DateISO, "2025-03-15")
	gt.Equal(t, info.Display, "March 15, 2025")
}

func TestBumper_Run(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	writeFile := func(t *testing.T, dir, name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	readFile := func(t *testing.T, path string) string {
		t.Helper()
		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		return string(data)
	}

	t.Run("stamps latex date and version commands", func(t *testing.T) {
		dir := t.TempDir()
		latex := writeFile(t, dir, "paper/main.tex", `\documentclass[11pt]{article}
\title{Agentic AI Systems}
\date{January 1, 2020}
\begin{document}
\end{document}
`)

		watch := &model.WatchConfig{Latex: "paper/main.tex"}
		bumper := usecase.NewBumper(dir, usecase.WithBumperClock(clock))
		gt.NoError(t, bumper.Run(ctx, watch))

		content := readFile(t, latex)
		gt.String(t, content).Contains(`\date{March 15, 2025}`)
		gt.String(t, content).Contains(`\newcommand{\paperversion}{2025.03.15}`)
		gt.String(t, content).Contains(`\newcommand{\lastupdated}{March 15, 2025}`)
	})

	t.Run("second run on the same day is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		latex := writeFile(t, dir, "paper/main.tex", `\documentclass{article}
\date{\today}
`)

		watch := &model.WatchConfig{Latex: "paper/main.tex"}
		bumper := usecase.NewBumper(dir, usecase.WithBumperClock(clock))

		gt.NoError(t, bumper.Run(ctx, watch))
		first := readFile(t, latex)

		gt.NoError(t, bumper.Run(ctx, watch))
		second := readFile(t, latex)

		gt.Equal(t, first, second)
	})

	t.Run("updates existing chapter frontmatter", func(t *testing.T) {
		dir := t.TempDir()
		chapter := writeFile(t, dir, "chapters/ch01.md", `---
title: Foundations
version: 2024.01.01
last_updated: 2024-01-01
---

# Foundations

**Last Updated**: January 1, 2024
`)

		watch := &model.WatchConfig{Chapters: []string{"chapters/ch01.md"}}
		bumper := usecase.NewBumper(dir, usecase.WithBumperClock(clock))
		gt.NoError(t, bumper.Run(ctx, watch))

		content := readFile(t, chapter)
		gt.String(t, content).Contains("title: Foundations")
		gt.String(t, content).Contains("version: 2025.03.15")
		gt.String(t, content).Contains("last_updated: 2025-03-15")
		gt.String(t, content).Contains("**Last Updated**: March 15, 2025")
		gt.String(t, content).NotContains("2024.01.01")
	})

	t.Run("prepends frontmatter when a chapter has none", func(t *testing.T) {
		dir := t.TempDir()
		chapter := writeFile(t, dir, "chapters/ch02.md", "# Orchestration\n\nBody text.\n")

		watch := &model.WatchConfig{Chapters: []string{"chapters/ch02.md"}}
		bumper := usecase.NewBumper(dir, usecase.WithBumperClock(clock))
		gt.NoError(t, bumper.Run(ctx, watch))

		content := readFile(t, chapter)
		gt.True(t, len(content) > 0)
		gt.String(t, content).Contains("---\nversion: 2025.03.15\n")
		gt.String(t, content).Contains("# Orchestration")
	})

	t.Run("missing files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		watch := &model.WatchConfig{
			Latex:    "paper/absent.tex",
			Chapters: []string{"chapters/absent.md"},
		}
		bumper := usecase.NewBumper(dir, usecase.WithBumperClock(clock))
		gt.NoError(t, bumper.Run(ctx, watch))
	})
}
