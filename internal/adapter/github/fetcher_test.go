package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"code-darpan/internal/common"
	"code-darpan/internal/domain"

	"github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var demoRef = domain.RepoRef{Owner: "octo", Name: "demo"}

// setupMockGitHubServer starts a fake GitHub API and a Fetcher pointed at it.
func setupMockGitHubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Fetcher) {
	server := httptest.NewServer(handler)

	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL

	return server, &Fetcher{client: client}
}

type mockEndpoint struct {
	status int
	body   any
}

// routeRepoEndpoints serves octo/demo endpoints keyed by path suffix
// ("", "contents", "languages", "readme"). Unknown keys answer 404.
func routeRepoEndpoints(t *testing.T, endpoints map[string]mockEndpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		path := strings.TrimSuffix(r.URL.Path, "/")
		key := strings.TrimPrefix(strings.TrimPrefix(path, "/repos/octo/demo"), "/")

		ep, ok := endpoints[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if ep.status != 0 {
			w.WriteHeader(ep.status)
		}
		json.NewEncoder(w).Encode(ep.body)
	}
}

func readmeBody(text string) map[string]string {
	return map[string]string{
		"name":     "README.md",
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(text)),
	}
}

func TestFetcher_Snapshot(t *testing.T) {
	server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, map[string]mockEndpoint{
		"": {body: map[string]any{
			"full_name":        "octo/demo",
			"stargazers_count": 42,
			"forks_count":      7,
			"language":         "Go",
		}},
		"contents": {body: []map[string]string{
			{"name": "README.md", "type": "file"},
			{"name": "go.mod", "type": "file"},
			{"name": "Internal", "type": "dir"},
		}},
		"languages": {body: map[string]int{"Go": 1200, "Shell": 30}},
		"readme":    {body: readmeBody("# Demo\nA small demo.")},
	}))
	defer server.Close()

	snap, err := fetcher.Snapshot(context.Background(), demoRef)
	require.NoError(t, err)

	assert.Equal(t, demoRef, snap.Ref)
	assert.Equal(t, domain.RepoMetadata{Stars: 42, Forks: 7, Language: "Go"}, snap.Metadata)
	assert.Equal(t, []string{"readme.md", "go.mod", "internal"}, snap.Files)
	assert.Equal(t, domain.LanguageBreakdown{"Go": 1200, "Shell": 30}, snap.Languages)
	assert.Equal(t, "# Demo\nA small demo.", snap.Readme)
}

func TestFetcher_Snapshot_MetadataNotFound(t *testing.T) {
	server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, map[string]mockEndpoint{
		"languages": {body: map[string]int{"Go": 1}},
	}))
	defer server.Close()

	snap, err := fetcher.Snapshot(context.Background(), demoRef)
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, common.HasCode(err, common.ErrCodeNotFound))
	assert.Equal(t, "Repo not found", common.MessageOf(err))
}

func TestFetcher_Metadata_CancelledContext(t *testing.T) {
	server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, map[string]mockEndpoint{}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Metadata(ctx, demoRef)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, common.HasCode(err, common.ErrCodeNotFound))
}

func TestFetcher_Snapshot_DegradedReads(t *testing.T) {
	tests := []struct {
		name      string
		endpoints map[string]mockEndpoint
	}{
		{
			name: "listing, languages and readme missing",
			endpoints: map[string]mockEndpoint{
				"": {body: map[string]any{"stargazers_count": 1}},
			},
		},
		{
			name: "server errors",
			endpoints: map[string]mockEndpoint{
				"":          {body: map[string]any{"stargazers_count": 1}},
				"contents":  {status: http.StatusInternalServerError, body: map[string]string{"message": "boom"}},
				"languages": {status: http.StatusForbidden, body: map[string]string{"message": "rate limited"}},
				"readme":    {status: http.StatusBadGateway, body: map[string]string{"message": "bad gateway"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, tt.endpoints))
			defer server.Close()

			snap, err := fetcher.Snapshot(context.Background(), demoRef)
			require.NoError(t, err)

			assert.Equal(t, 1, snap.Metadata.Stars)
			assert.Empty(t, snap.Metadata.Language)
			assert.NotNil(t, snap.Files)
			assert.Empty(t, snap.Files)
			assert.NotNil(t, snap.Languages)
			assert.Empty(t, snap.Languages)
			assert.Empty(t, snap.Readme)
		})
	}
}

func TestFetcher_Readme_Decoding(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]string
		expected string
	}{
		{
			name:     "plain base64",
			body:     readmeBody("hello"),
			expected: "hello",
		},
		{
			name: "base64 with line breaks",
			body: map[string]string{
				"encoding": "base64",
				"content":  "aGVs\nbG8g\nd29y\nbGQ=\n",
			},
			expected: "hello world",
		},
		{
			name:     "not base64",
			body:     map[string]string{"encoding": "base64", "content": "!!! not base64 !!!"},
			expected: "",
		},
		{
			name:     "not utf-8",
			body:     map[string]string{"encoding": "base64", "content": base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, map[string]mockEndpoint{
				"readme": {body: tt.body},
			}))
			defer server.Close()

			readme, err := fetcher.Readme(context.Background(), demoRef)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, readme)
		})
	}
}

func TestFetcher_Readme_Error(t *testing.T) {
	server, fetcher := setupMockGitHubServer(t, routeRepoEndpoints(t, nil))
	defer server.Close()

	readme, err := fetcher.Readme(context.Background(), demoRef)
	assert.Error(t, err)
	assert.True(t, common.HasCode(err, common.ErrCodeDegradedFetch))
	assert.Empty(t, readme)
}

func TestDecodeReadme_Nil(t *testing.T) {
	assert.Equal(t, "", decodeReadme(nil))
}

func TestNewFetcher(t *testing.T) {
	fetcher, err := NewFetcher("", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", fetcher.client.BaseURL.String())

	fetcher, err = NewFetcher("token", "https://ghe.example.com/api/v3")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", fetcher.client.BaseURL.String())

	_, err = NewFetcher("", "://bad")
	assert.Error(t, err)
}
