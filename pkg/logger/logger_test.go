package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	require.Error(t, err)
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf).With(String("component", "pricing"))

	log.Info("price resolved", Float64("price", 1.5), Error(errors.New("boom")), Bool("dex", true))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pricing", entry["component"])
	assert.Equal(t, 1.5, entry["price"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, true, entry["dex"])
	assert.Equal(t, "price resolved", entry["message"])
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("ignored", String("k", "v"))
}
