package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoIntel/pkg/config"
	xhttp "CryptoIntel/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	name     string
	startErr error
	log      *[]string
}

func (w *fakeWorker) Start() error {
	*w.log = append(*w.log, "start "+w.name)
	return w.startErr
}

func (w *fakeWorker) Stop(context.Context) error {
	*w.log = append(*w.log, "stop "+w.name)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("environment: test\n"))
	require.NoError(t, err)
	return cfg
}

func testOptions() []xhttp.ServerOption {
	return []xhttp.ServerOption{
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetricsPath(""),
		xhttp.WithTimeouts(time.Second, time.Second, time.Second),
	}
}

func TestRunContextStartsAndStopsWorkersInOrder(t *testing.T) {
	var log []string
	app := New(testConfig(t), nil, nil, testOptions()...)
	app.AddWorker("a", &fakeWorker{name: "a", log: &log})
	app.AddWorker("b", &fakeWorker{name: "b", log: &log})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.RunContext(ctx))

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestRunContextWorkerStartFailure(t *testing.T) {
	var log []string
	app := New(testConfig(t), nil, nil, testOptions()...)
	app.AddWorker("a", &fakeWorker{name: "a", log: &log})
	app.AddWorker("b", &fakeWorker{name: "b", log: &log, startErr: errors.New("redis ping: refused")})
	app.AddWorker("c", &fakeWorker{name: "c", log: &log})

	err := app.RunContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, "start b: redis ping: refused", err.Error())
	assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
}
