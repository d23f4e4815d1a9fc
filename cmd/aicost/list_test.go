package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/aicost/internal/catalog"
)

func TestShowUnknownServiceReturnsError(t *testing.T) {
	dataDir = t.TempDir()

	cmd := showCmd()
	err := cmd.RunE(cmd, []string{"nope"})

	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestShowKnownService(t *testing.T) {
	dataDir = t.TempDir()

	cmd := showCmd()
	err := cmd.RunE(cmd, []string{"openai"})

	assert.NoError(t, err)
}
