package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp"})
	require.NoError(t, err)
	assert.Equal(t, "mcp", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("http"))
}

func TestMCPCmd_RequiresLibrary(t *testing.T) {
	setupServices(t, nil)
	libraryService = nil

	_, _, err := executeCommand(t, "mcp")

	assert.EqualError(t, err, "library service not configured")
}
