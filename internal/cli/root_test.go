package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	cmd := newRootCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["ensure-indexes"])
	assert.True(t, names["warm-cache"])

	flag := cmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, flag)
	assert.Equal(t, ".env", flag.DefValue)
}

func TestSetupRejectsBadConfig(t *testing.T) {
	t.Setenv("EPISODE_COUNT", "0")
	_, _, err := setup("")
	assert.Error(t, err)
}
