package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/daycare-api/pkg/config"
)

func TestDSNMySQL(t *testing.T) {
	driver, dsn, err := DSN(config.DatabaseConfig{Driver: config.DriverMySQL, Host: "db", Port: 3306, User: "app", Password: "pw", Name: "daycare"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Contains(t, dsn, "app:pw@tcp(db:3306)/daycare")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDSNPostgres(t *testing.T) {
	driver, dsn, err := DSN(config.DatabaseConfig{Driver: config.DriverPostgres, Host: "db", Port: 5432, User: "app", Password: "pw", Name: "daycare", SSLMode: "disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=daycare sslmode=disable", dsn)
}

func TestDSNUnknownDriver(t *testing.T) {
	_, _, err := DSN(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
