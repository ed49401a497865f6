package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	return ev
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "restaurante-api", Output: &buf})

	log.Component("ledger").Info().Str("ingredient_id", "arroz").Msg("compra registrada")

	ev := decodeLine(t, &buf)
	assert.Equal(t, "restaurante-api", ev["service"])
	assert.Equal(t, "ledger", ev["component"])
	assert.Equal(t, "arroz", ev["ingredient_id"])
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "compra registrada", ev["message"])
	assert.Contains(t, ev, "time")
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("stock crítico")
	assert.Equal(t, "warn", decodeLine(t, &buf)["level"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Output: &buf})

	log.Debug().Msg("descartado")
	assert.Zero(t, buf.Len())
	log.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Component("ventas").Error().Msg("sin salida")
	})
}
