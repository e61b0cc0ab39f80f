package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/baysearch"
	bayhttp "github.com/fwojciec/baysearch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("requests the search path with encoded parameters", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotQuery, gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("_nkw")
			gotUA = r.Header.Get("User-Agent")
			fmt.Fprint(w, `<html><body><ul id="ListViewInner"></ul></body></html>`)
		}))
		defer server.Close()

		source := bayhttp.NewSource(bayhttp.WithBaseURL(server.URL))
		defer source.Close()

		doc, err := source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})

		require.NoError(t, err)
		assert.Equal(t, "/sch/i.html", gotPath)
		assert.Equal(t, "lego", gotQuery)
		assert.NotEmpty(t, gotUA)
		assert.Contains(t, doc.HTML, "ListViewInner")
		assert.Contains(t, doc.URL, "_nkw=lego")
		assert.False(t, doc.FetchedAt.IsZero())
	})

	t.Run("records the final URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sch/i.html", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/sch/final.html", http.StatusFound)
		})
		mux.HandleFunc("/sch/final.html", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html></html>")
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		source := bayhttp.NewSource(bayhttp.WithBaseURL(server.URL))
		defer source.Close()

		doc, err := source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/sch/final.html", doc.URL)
	})

	t.Run("returns an error for non-200 responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		source := bayhttp.NewSource(bayhttp.WithBaseURL(server.URL))
		defer source.Close()

		_, err := source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 503")
	})

	t.Run("rejects invalid requests without hitting the network", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		defer server.Close()

		source := bayhttp.NewSource(bayhttp.WithBaseURL(server.URL))
		defer source.Close()

		_, err := source.Fetch(context.Background(), baysearch.SearchRequest{})

		require.Error(t, err)
		assert.Equal(t, baysearch.EINVALID, baysearch.ErrorCode(err))
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		source := bayhttp.NewSource(
			bayhttp.WithBaseURL(server.URL),
			bayhttp.WithUserAgent("baysearch-test/1.0"),
		)
		defer source.Close()

		_, err := source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})

		require.NoError(t, err)
		assert.Equal(t, "baysearch-test/1.0", gotUA)
	})

	t.Run("waits on the rate limiter before each request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		limiter := &countingLimiter{}
		source := bayhttp.NewSource(
			bayhttp.WithBaseURL(server.URL),
			bayhttp.WithRateLimiter(limiter),
		)
		defer source.Close()

		_, err := source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})
		require.NoError(t, err)
		_, err = source.Fetch(context.Background(), baysearch.SearchRequest{Query: "lego"})
		require.NoError(t, err)

		assert.Equal(t, 2, limiter.calls)
	})
}

// countingLimiter counts Wait calls without blocking.
type countingLimiter struct {
	calls int
}

func (l *countingLimiter) Wait(_ context.Context) error {
	l.calls++
	return nil
}
