package clickhouse

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(ClientConfig{
		Host:         "ch.local",
		Port:         9000,
		Database:     "intel",
		User:         "writer",
		Password:     "p@ss",
		DialTimeout:  5 * time.Second,
		MaxExecTime:  time.Minute,
		AsyncInsert:  true,
		WaitForAsync: true,
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/intel", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "5s", u.Query().Get("dial_timeout"))
	assert.Equal(t, "60", u.Query().Get("max_execution_time"))
	assert.Equal(t, "1", u.Query().Get("wait_for_async_insert"))
}

func TestBuildDSNHTTP(t *testing.T) {
	dsn := buildDSN(ClientConfig{Host: "h", Port: 8123, Database: "d", UseHTTP: true})
	assert.Contains(t, dsn, "http://")
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient()
	assert.Error(t, err)
}
