package arxiv_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memari-majid/paperwatch/pkg/domain/model"
	"github.com/memari-majid/paperwatch/pkg/infra/arxiv"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2503.00001v1</id>
    <title>Planning for
  LLM   Agents</title>
    <published>2025-03-10T17:59:00Z</published>
    <summary>We study planning
  strategies for language model agents.</summary>
    <author><name>Ada Lovelace</name></author>
    <author><name>Alan Turing</name></author>
    <link href="http://arxiv.org/abs/2503.00001v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2503.00001v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id></id>
    <title>Entry missing its identifier</title>
  </entry>
</feed>`

func TestClient_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		gt.Equal(t, r.URL.Query().Get("sortBy"), "submittedDate")
		gt.Equal(t, r.URL.Query().Get("max_results"), "5")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := arxiv.New(arxiv.WithBaseURL(server.URL))
	gt.Equal(t, client.Name(), model.SourceArxiv)

	papers, err := client.Search(context.Background(), "LLM agent planning", 5)
	gt.NoError(t, err)
	gt.Equal(t, gotQuery, "all:LLM agent planning")

	// The entry without an ID is dropped
	gt.Equal(t, len(papers), 1)

	p := papers[0]
	gt.Equal(t, p.Title, "Planning for LLM Agents")
	gt.Equal(t, p.URL, "http://arxiv.org/abs/2503.00001v1")
	gt.Equal(t, p.PDFURL, "http://arxiv.org/pdf/2503.00001v1")
	gt.Equal(t, p.Abstract, "We study planning strategies for language model agents.")
	gt.Array(t, p.Authors).Equal([]string{"Ada Lovelace", "Alan Turing"})
	gt.Equal(t, p.Published.Format("2006-01-02"), "2025-03-10")
	gt.Equal(t, p.Source, model.SourceArxiv)
}

func TestClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := arxiv.New(arxiv.WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), "agents", 5)
	gt.Error(t, err)
}

func TestClient_Search_MalformedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml <<<"))
	}))
	defer server.Close()

	client := arxiv.New(arxiv.WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), "agents", 5)
	gt.Error(t, err)
}
