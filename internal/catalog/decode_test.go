package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayloadWindows1252(t *testing.T) {
	// "Pokémon" with a latin-1 e-acute (0xE9), which is invalid UTF-8.
	payload := []byte(`[{"name": "Pok` + "\xe9" + `mon", "dropRate": 1}]`)

	items, err := decodePayload(payload)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var card struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(items[0], &card))
	assert.Equal(t, "Pokémon", card.Name)
}

func TestDecodePayloadGarbage(t *testing.T) {
	_, err := decodePayload([]byte("not json at all"))
	assert.Error(t, err)
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{`2`, 2, true},
		{`2.5`, 2.5, true},
		{`"3"`, 3, true},
		{`"0.25"`, 0.25, true},
		{`"rare"`, 0, false},
		{`null`, 0, false},
	}

	for _, tt := range tests {
		got, ok := asFloat(json.RawMessage(tt.raw))
		assert.Equal(t, tt.ok, ok, "raw=%s", tt.raw)
		if ok {
			assert.Equal(t, tt.want, got, "raw=%s", tt.raw)
		}
	}
}
