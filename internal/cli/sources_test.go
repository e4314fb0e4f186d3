package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesRequiresAPIKey(t *testing.T) {
	setupCLITest(t)

	rootCmd.SetArgs([]string{"sources"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable api key")
}

func TestSourcesQueriesEntitlementEndpoint(t *testing.T) {
	setupCLITest(t)

	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"sources":["reuters","twitter"]}`))
	}))
	defer srv.Close()

	rootCmd.SetArgs([]string{"sources", "--api-key", "test-key", "--server", srv.URL})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/v2/rest/content/sources", path)
}

func TestSourcesFailsAgainstUnreachableServer(t *testing.T) {
	setupCLITest(t)

	rootCmd.SetArgs([]string{
		"sources",
		"--api-key", "test-key",
		"--server", "http://127.0.0.1:1",
	})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list sources")
}
