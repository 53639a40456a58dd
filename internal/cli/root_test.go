package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "creatorctl", cmd.Use)
	assert.Contains(t, cmd.Long, "revenue projection")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"price", "revenue", "reconcile", "expire"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestPriceCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	priceCmd, _, err := cmd.Find([]string{"price"})
	require.NoError(t, err)

	cycleFlag := priceCmd.Flags().Lookup("cycle")
	require.NotNil(t, cycleFlag)
	assert.Equal(t, "monthly", cycleFlag.DefValue)

	// --price is required, so default is empty
	priceFlag := priceCmd.Flags().Lookup("price")
	require.NotNil(t, priceFlag)
	assert.Equal(t, "", priceFlag.DefValue)
}

func TestExpireCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	expireCmd, _, err := cmd.Find([]string{"expire"})
	require.NoError(t, err)

	limitFlag := expireCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "500", limitFlag.DefValue)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", assert.AnError)))
}
