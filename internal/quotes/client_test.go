package quotes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartResponse(price, previousClose float64) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [
				{"meta": {"regularMarketPrice": %f, "chartPreviousClose": %f}}
			],
			"error": null
		}
	}`, price, previousClose)
}

func TestFetchQuote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/VOO", r.URL.Path)
		fmt.Fprint(w, chartResponse(502.31, 499.80))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	quote, err := client.FetchQuote("VOO")
	require.NoError(t, err)
	assert.Equal(t, 502.31, quote.LastPrice)
	assert.Equal(t, 499.80, quote.PreviousClose)
}

func TestFetchQuote_EscapesTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/BRK.B", r.URL.Path)
		fmt.Fprint(w, chartResponse(480, 478))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("BRK.B")
	require.NoError(t, err)
}

func TestFetchQuote_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("VOO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchQuote_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"description": "No data found"}}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestFetchQuote_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("EMPTY")
	require.Error(t, err)
}

func TestFetchQuote_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>rate limited</html>")
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("VOO")
	require.Error(t, err)
}

func TestFetchQuote_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.FetchQuote("VOO")
	require.Error(t, err)
}
