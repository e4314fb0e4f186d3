package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitiesRequiresAPIKey(t *testing.T) {
	setupCLITest(t)

	rootCmd.SetArgs([]string{"entities", "--query", "apple"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable api key")
}

func TestEntitiesQueriesDirectoryWithFlags(t *testing.T) {
	setupCLITest(t)

	var got struct {
		APIKey        string `json:"apiKey"`
		Query         string `json:"query"`
		ExactMatching bool   `json:"exactMatching"`
		MaxResults    int    `json:"maxResults"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"results":[
			{"entityID":"e1","entityType":"COMPANY","displayName":"Apple Inc.","description":"Consumer electronics"}
		]}`))
	}))
	defer srv.Close()

	rootCmd.SetArgs([]string{
		"entities",
		"--api-key", "test-key",
		"--query", "apple",
		"--exact",
		"--server", srv.URL,
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "test-key", got.APIKey)
	assert.Equal(t, "apple", got.Query)
	assert.True(t, got.ExactMatching)
	assert.Equal(t, 20, got.MaxResults)
}

func TestEntitiesFailsAgainstUnreachableServer(t *testing.T) {
	setupCLITest(t)

	rootCmd.SetArgs([]string{
		"entities",
		"--api-key", "test-key",
		"--query", "apple",
		"--server", "http://127.0.0.1:1",
	})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup entities")
}
