package usecase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/usecase"
)

func TestExtractLinks(t *testing.T) {
	content := `# Chapter 3

See the [LangChain docs](https://python.langchain.com/docs) and
the [local figure](./figures/agent.png), plus [this anchor](#setup).
Also [arXiv paper](http://arxiv.org/abs/2401.00001).
`

	links := usecase.ExtractLinks(content)
	gt.Equal(t, len(links), 2)
	gt.Equal(t, links[0].Text, "LangChain docs")
	gt.Equal(t, links[0].URL, "https://python.langchain.com/docs")
	gt.Equal(t, links[1].URL, "http://arxiv.org/abs/2401.00001")
}

func TestLinkChecker_VerifyFile(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "README.md")
	content := "[good](" + server.URL + "/ok) and [bad](" + server.URL + "/gone)\n"
	gt.NoError(t, os.WriteFile(file, []byte(content), 0644))

	checker := usecase.NewLinkChecker(usecase.WithRequestWait(0))

	broken := checker.VerifyFile(ctx, file)
	gt.Equal(t, len(broken), 1)
	gt.Equal(t, broken[0].Text, "bad")
	gt.Equal(t, broken[0].Status, http.StatusNotFound)
	gt.Equal(t, broken[0].File, file)
}

func TestLinkChecker_MissingFile(t *testing.T) {
	checker := usecase.NewLinkChecker(usecase.WithRequestWait(0))
	broken := checker.VerifyFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
	gt.Equal(t, len(broken), 0)
}

func TestLinkChecker_MaxLinksPerFile(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "links.md")
	content := ""
	for i := 0; i < 5; i++ {
		content += "[l](" + server.URL + "/ok)\n"
	}
	gt.NoError(t, os.WriteFile(file, []byte(content), 0644))

	checker := usecase.NewLinkChecker(
		usecase.WithRequestWait(0),
		usecase.WithMaxLinksPerFile(2),
	)

	broken := checker.VerifyFile(context.Background(), file)
	gt.Equal(t, len(broken), 0)
	gt.Equal(t, requests, 2)
}
