package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"ask", "serve", "tiers", "config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	err := askCmd.Args(askCmd, []string{})
	assert.Error(t, err)

	err = askCmd.Args(askCmd, []string{"largest", "projects"})
	assert.NoError(t, err)
}
