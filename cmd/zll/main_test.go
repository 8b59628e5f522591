package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "simulate", "reset-db"}, names)

	simulate, _, err := root.Find([]string{"simulate"})
	require.NoError(t, err)
	assert.NotNil(t, simulate.Flags().Lookup("borrow-fraction"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-file"))
}

func TestSimulateCommandRunsScenario(t *testing.T) {
	t.Setenv("DB_HOST", "")
	root := newRootCmd()
	root.SetArgs([]string{"simulate", "--log-level", "error"})
	require.NoError(t, root.Execute())
}

func TestResetDBRequiresDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	root := newRootCmd()
	root.SetArgs([]string{"reset-db", "--yes", "--log-level", "error"})
	assert.ErrorContains(t, root.Execute(), "DB_HOST")
}
