package qrcode

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderer_DataURI(t *testing.T) {
	r := NewRenderer(0)

	uri, err := r.DataURI("00020101021226430014BR.GOV.BCB.PIX6304F871")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, pngHeader))
}

func TestRenderer_EmptyContent(t *testing.T) {
	_, err := NewRenderer(128).PNG("")
	assert.Error(t, err)
}
