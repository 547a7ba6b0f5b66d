package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(&buf, "debug", true)

	l.WithField("order_id", 7).Info("order created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 7, entry["order_id"])
	assert.Equal(t, log.DebugLevel, l.GetLevel())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput(&buf, "chatty", false)

	assert.Equal(t, log.InfoLevel, l.GetLevel())
	assert.True(t, strings.Contains(buf.String(), "unknown log level"))

	buf.Reset()
	l.Debug("hidden")
	assert.Empty(t, buf.String())
}
