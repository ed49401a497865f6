package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interno", Port: 6543, User: "app", Password: "secreto",
		DBName: "restaurante", SSLMode: "disable", MaxConns: 12, MinConns: 3,
	}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db.interno", pc.ConnConfig.Host, "el host no se reemplaza por una IP resuelta")
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "restaurante", pc.ConnConfig.Database)
	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.NotNil(t, pc.AfterConnect, "registra el codec decimal en cada conexión")
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@pg.example.com:5432/ventas?sslmode=disable",
		Host:        "ignorado",
		MaxConns:    4,
		MinConns:    10,
	}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pg.example.com", pc.ConnConfig.Host)
	assert.Equal(t, "ventas", pc.ConnConfig.Database)
	assert.Equal(t, int32(4), pc.MinConns, "MinConns no supera MaxConns")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/db"})
	assert.Error(t, err)
}
