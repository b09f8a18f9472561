package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memari-majid/paperwatch/pkg/domain/interfaces"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
)

type snapshotUseCase struct {
	githubClient interfaces.GitHubClient
}

// NewSnapshot creates the repository snapshot fetcher used by serve-mode
// runs that have no local checkout
func NewSnapshot(githubClient interfaces.GitHubClient) interfaces.SnapshotUseCase {
	return &snapshotUseCase{
		githubClient: githubClient,
	}
}

// Fetch downloads the zipball of a ref and extracts it to a temporary
// directory. The caller removes Snapshot.Root when done.
func (uc *snapshotUseCase) Fetch(ctx context.Context, owner, repo, ref string) (*model.Snapshot, error) {
	logger := ctxlog.From(ctx)

	zipData, err := uc.githubClient.DownloadZipball(ctx, owner, repo, ref)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download zipball",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("ref", ref))
	}

	logger.Info("downloaded zipball",
		"size_bytes", len(zipData), "owner", owner, "repo", repo, "ref", ref)

	snapshot, err := extractZip(zipData)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract zipball",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	logger.Info("extracted snapshot",
		"dir", snapshot.Dir, "file_count", len(snapshot.Files), "total_size_bytes", snapshot.Size)

	return snapshot, nil
}

// extractZip extracts ZIP data to a temporary directory and locates the
// wrapping top-level directory GitHub puts into zipballs
func extractZip(zipData []byte) (*model.Snapshot, error) {
	tempDir, err := os.MkdirTemp("", "paperwatch-snapshot-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temporary directory")
	}

	if err := os.Chmod(tempDir, 0700); err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, goerr.Wrap(err, "failed to set directory permissions", goerr.V("dir", tempDir))
	}

	zipReader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, goerr.Wrap(err, "failed to create zip reader")
	}

	var files []string
	var totalSize int64
	topLevel := ""

	for _, file := range zipReader.File {
		if err := extractFile(file, tempDir); err != nil {
			// Do not leak the partial extraction
			_ = os.RemoveAll(tempDir)
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("file", file.Name))
		}

		if topLevel == "" {
			if dir, _, ok := strings.Cut(file.Name, "/"); ok {
				topLevel = dir
			}
		}

		files = append(files, file.Name)
		totalSize += int64(file.UncompressedSize64)
	}

	return &model.Snapshot{
		Root:  tempDir,
		Dir:   filepath.Join(tempDir, topLevel),
		Files: files,
		Size:  totalSize,
	}, nil
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	// Prevent path traversal
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid file path in archive",
			goerr.V("file", file.Name), goerr.V("dest", destPath))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip", goerr.V("file", file.Name))
	}
	defer rc.Close()

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.FileInfo().Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(destPath)))
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	return nil
}
