package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toggleCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().Bool("reasoning", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestEffectiveToggle(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		configDefault bool
		expected      bool
	}{
		{
			name:          "flag unset falls back to config default",
			args:          nil,
			configDefault: true,
			expected:      true,
		},
		{
			name:          "flag unset with config default off",
			args:          nil,
			configDefault: false,
			expected:      false,
		},
		{
			name:          "flag set overrides config default off",
			args:          []string{"--reasoning"},
			configDefault: false,
			expected:      true,
		},
		{
			name:          "flag set explicitly false overrides config default on",
			args:          []string{"--reasoning=false"},
			configDefault: true,
			expected:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := toggleCommand(t, tt.args...)
			flagValue, err := cmd.Flags().GetBool("reasoning")
			require.NoError(t, err)

			assert.Equal(t, tt.expected,
				effectiveToggle(cmd, "reasoning", flagValue, tt.configDefault))
		})
	}
}
