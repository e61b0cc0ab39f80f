package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/baysearch"
	main "github.com/fwojciec/baysearch/cmd/baysearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMain executes the CLI against a temp database and returns its output.
func runMain(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "baysearch.db")

	var out, errOut bytes.Buffer
	err = m.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("fails without a command", func(t *testing.T) {
		t.Parallel()

		_, _, err := runMain(t)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "baysearch")
		assert.Contains(t, stdout, "search")
	})

	t.Run("rejects unknown commands", func(t *testing.T) {
		t.Parallel()

		_, _, err := runMain(t, "frobnicate")

		require.Error(t, err)
	})

	t.Run("accepts global flags before the command", func(t *testing.T) {
		t.Parallel()

		page, err := os.ReadFile("testdata/search.html")
		require.NoError(t, err)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(page)
		}))
		defer srv.Close()

		stdout, _, err := runMain(t, "-v", "search", "lego", "--base-url", srv.URL)

		require.NoError(t, err)
		assert.Contains(t, stdout, "2741 results total")
	})
}

func TestParseCmd(t *testing.T) {
	t.Parallel()

	t.Run("extracts a saved results page to JSON", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, "parse", "testdata/search.html", "--url", "https://www.ebay.de/sch/i.html?_nkw=lego")
		require.NoError(t, err)

		var result baysearch.SearchResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))

		assert.Equal(t, "https://www.ebay.de/sch/i.html?_nkw=lego", result.URL)
		assert.Equal(t, 2741, result.Total)
		assert.Equal(t, "10115", result.Zip)
		require.Len(t, result.Items, 3)
		require.Len(t, result.Ads, 1)

		// The promoted top slot stays organic; the second promoted node is the ad.
		assert.Equal(t, "254998111222", result.Items[0].ID)
		assert.Equal(t, "LEGO Star Wars 75192 Millennium Falcon", result.Items[0].Title)
		assert.Equal(t, "285334556677", result.Ads[0].ID)
		assert.True(t, result.Ads[0].Newly)

		// Range thumbnail drives the price-range flag.
		assert.True(t, result.Items[2].PriceRange)
		assert.True(t, result.Items[2].Plus)
		assert.True(t, result.Items[2].AllowsOffer)

		assert.Equal(t, map[baysearch.ItemCondition]int{
			baysearch.ConditionNew:  1824,
			baysearch.ConditionUsed: 917,
		}, result.ConditionCounts)
	})

	t.Run("fails on a page without a listing container", func(t *testing.T) {
		t.Parallel()

		tmp := filepath.Join(t.TempDir(), "notasearch.html")
		require.NoError(t, os.WriteFile(tmp, []byte("<html><body><p>hello</p></body></html>"), 0644))

		_, stderr, err := runMain(t, "parse", tmp)

		require.Error(t, err)
		assert.Contains(t, stderr, "no listing container")
	})
}
