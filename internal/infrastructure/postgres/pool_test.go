package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/pkg/config"
)

func TestBuildPoolConfig(t *testing.T) {
	cfg := config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "postgres", Password: "p@ss:word",
		DBName: "inventario_stock", SSLMode: "disable",
		MaxConns: 8, LockTimeout: 1500 * time.Millisecond,
	}
	pc, err := buildPoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "1500", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestBuildPoolConfig_ValoresPorDefecto(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@127.0.0.1:5433/db?sslmode=disable&application_name=custom",
		MaxConns:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns, "MinConns nunca supera MaxConns")
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "custom", pc.ConnConfig.RuntimeParams["application_name"])
	_, hasLock := pc.ConnConfig.RuntimeParams["lock_timeout"]
	assert.False(t, hasLock)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}

func TestWithIPv4Host_IPLiteral(t *testing.T) {
	assert.Equal(t, "postgres://u:p@10.0.0.7:5432/db", withIPv4Host("postgres://u:p@10.0.0.7/db"))
	assert.Equal(t, "host=db user=u", withIPv4Host("host=db user=u"), "formato clave=valor no se modifica")
}
