package database

import (
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSNReportsFoundRows(t *testing.T) {
	for _, dsn := range []string{
		"root:root@tcp(127.0.0.1:3306)/restopos",
		"root:root@tcp(127.0.0.1:3306)/restopos?charset=utf8mb4&parseTime=True",
		"root:root@tcp(127.0.0.1:3306)/restopos?clientFoundRows=false",
	} {
		t.Run(dsn, func(t *testing.T) {
			out, err := mysqlDSN(dsn)
			require.NoError(t, err)

			cfg, err := mysqldriver.ParseDSN(out)
			require.NoError(t, err)
			assert.True(t, cfg.ClientFoundRows)
			assert.Equal(t, "restopos", cfg.DBName)
			assert.Equal(t, "127.0.0.1:3306", cfg.Addr)
		})
	}
}

func TestMySQLDSNKeepsOtherParams(t *testing.T) {
	out, err := mysqlDSN("root:root@tcp(127.0.0.1:3306)/restopos?parseTime=True")
	require.NoError(t, err)

	cfg, err := mysqldriver.ParseDSN(out)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
}

func TestMySQLDSNRejectsGarbage(t *testing.T) {
	_, err := mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestBuildDialectorUnknownDriver(t *testing.T) {
	_, err := buildDialector("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
