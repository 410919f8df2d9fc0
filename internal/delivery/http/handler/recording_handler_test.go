package handler

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAudioData(t *testing.T) {
	raw := make([]byte, 64)
	copy(raw, "RIFF")
	copy(raw[8:], "WAVEfmt ")
	encoded := base64.StdEncoding.EncodeToString(raw)

	decoded, err := decodeAudioData(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	// Data URL form, as sent by browser recorders
	decoded, err = decodeAudioData("data:audio/wav;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	_, err = decodeAudioData("this is not base64!!!")
	assert.Error(t, err)
}
