package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger, closer := New(Options{Level: "debug", File: path})

	logger.WithField("path", "/healthz").Info("http")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "http", entry["msg"])
	assert.Equal(t, "/healthz", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewDefaultsToStderr(t *testing.T) {
	logger, closer := New(Options{Text: true})
	assert.Equal(t, os.Stderr, logger.Out)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.NoError(t, closer.Close())
}
