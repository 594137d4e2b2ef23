package main

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/skillboard/internal/config"
	"github.com/jonathan/skillboard/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportCommand_RequiresDatabase(t *testing.T) {
	_, err := executeCommand(t, "import", "--dataset", fixture("valid", "skill_groups.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestImportCommand_RequiresDataset(t *testing.T) {
	_, err := executeCommand(t, "import", "--db-url", "postgres://localhost/skillboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestImportCommand_Integration(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	out, err := executeCommand(t, "import", "--dataset", fixture("valid", "skill_groups.json"),
		"--db-url", dbURL, "--character", "9000002")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 groups (4 skills) for character 9000002")

	out, err = executeCommand(t, "render", "--db-url", dbURL, "--character", "9000002", "--text", "--level", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Drone Interfacing")
}

func TestOpenSource_Dataset(t *testing.T) {
	cfg := &config.Config{Dataset: fixture("valid", "skill_groups.json")}

	source, closeSource, err := openSource(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeSource()

	assert.IsType(t, &server.StaticSource{}, source)
	dataset, err := source.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, dataset, 3)
}

func TestOpenSource_None(t *testing.T) {
	source, closeSource, err := openSource(context.Background(), &config.Config{}, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, source)
	assert.NotNil(t, closeSource)
}
