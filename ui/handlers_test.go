package ui_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosurvey/app"
	"gosurvey/internal/testkit"
	"gosurvey/ui"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	service := app.NewAnalyzerService(testkit.FixedDataset())
	httpApp := ui.NewApp(service, ui.Config{})
	server := httptest.NewServer(httpApp.Router())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, v interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestListQuestions(t *testing.T) {
	server := newTestServer(t)

	var questions []map[string]interface{}
	resp := getJSON(t, server.URL+"/api/questions", &questions)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, questions, 2)
}

func TestSearchQuestions(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	resp := getJSON(t, server.URL+"/api/questions/search?q=languages", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, 1, body.Results[0].ID)
}

func TestDistributionEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		TotalResponses int `json:"total_responses"`
		Entries        []struct {
			Option string  `json:"option"`
			Count  int     `json:"count"`
			Pct    float64 `json:"percentage"`
		} `json:"entries"`
	}
	resp := getJSON(t, server.URL+"/api/questions/1/distribution", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, body.TotalResponses)
	require.NotEmpty(t, body.Entries)
	assert.Equal(t, "Python", body.Entries[0].Option)
	assert.Equal(t, 3, body.Entries[0].Count)
}

func TestDistributionUnknownQuestion(t *testing.T) {
	server := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/questions/42/distribution", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDistributionBadID(t *testing.T) {
	server := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/questions/abc/distribution", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubsetEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Size       int     `json:"size"`
		Percentage float64 `json:"percentage"`
	}
	resp := getJSON(t, server.URL+"/api/subsets?question=1&option=Rust", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, body.Size)
	assert.InDelta(t, 33.33, body.Percentage, 0.01)
}

func TestSubsetTokenMode(t *testing.T) {
	server := newTestServer(t)

	var contains struct {
		Size int `json:"size"`
	}
	getJSON(t, server.URL+"/api/subsets?question=1&option=Java", &contains)
	// Substring matching also catches JavaScript.
	assert.Equal(t, 2, contains.Size)

	var token struct {
		Size int `json:"size"`
	}
	getJSON(t, server.URL+"/api/subsets?question=1&option=Java&mode=token", &token)
	assert.Equal(t, 1, token.Size)
}

func TestSubsetMissingOption(t *testing.T) {
	server := newTestServer(t)

	resp := getJSON(t, server.URL+"/api/subsets?question=1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "markdown")

	resp, err = http.Get(server.URL + "/api/report?format=html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Make one query so counters exist.
	getJSON(t, server.URL+"/api/questions/1/distribution", nil)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, server.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
