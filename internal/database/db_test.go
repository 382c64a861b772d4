package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestDSN_RoundTrips(t *testing.T) {
	dsn := DSN(Options{User: "studio", Pass: "p@ss", Host: "db", Port: "3306", Name: "showcase"})

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "studio", cfg.User)
	require.Equal(t, "p@ss", cfg.Passwd)
	require.Equal(t, "db:3306", cfg.Addr)
	require.Equal(t, "showcase", cfg.DBName)
	require.True(t, cfg.ParseTime)
	require.Equal(t, time.UTC, cfg.Loc)
}
