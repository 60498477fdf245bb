package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Named("apiclient").Info().Str("path", "/api/produtos/").Msg("petición")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "la salida debe ser JSON")
	assert.Equal(t, "apiclient", entry["component"])
	assert.Equal(t, "/api/produtos/", entry["path"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Debug().Msg("oculto")
	log.Info().Msg("oculto")
	assert.Empty(t, buf.String(), "debug e info no deben escribirse con nivel warn")

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Error().Msg("nada")
	})
}
