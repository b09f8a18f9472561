package pypi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/infra/pypi"
)

func TestClient_LatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/pypi/langchain/json")

		response := map[string]any{
			"info": map[string]any{
				"version": "0.3.14",
				"project_urls": map[string]string{
					"Homepage": "https://github.com/langchain-ai/langchain",
				},
			},
			"releases": map[string]any{
				"0.3.14": []map[string]any{
					{"upload_time": "2025-01-10T08:15:30"},
				},
				"0.3.13": []map[string]any{
					{"upload_time": "2024-12-01T10:00:00"},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := pypi.New(pypi.WithBaseURL(server.URL))

	release, err := client.LatestVersion(context.Background(), "langchain")
	gt.NoError(t, err)
	gt.Equal(t, release.Framework, "langchain")
	gt.Equal(t, release.Version, "0.3.14")
	gt.Equal(t, release.URL, "https://github.com/langchain-ai/langchain")
	gt.Equal(t, release.Source, "pypi")
	gt.Equal(t, release.ReleasedAt.Format("2006-01-02"), "2025-01-10")
}

func TestClient_LatestVersion_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := pypi.New(pypi.WithBaseURL(server.URL))
	_, err := client.LatestVersion(context.Background(), "no-such-package")
	gt.Error(t, err)
}

func TestClient_LatestVersion_EmptyVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"info":{"version":""},"releases":{}}`))
	}))
	defer server.Close()

	client := pypi.New(pypi.WithBaseURL(server.URL))
	_, err := client.LatestVersion(context.Background(), "broken")
	gt.Error(t, err)
}
