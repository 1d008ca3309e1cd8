package vectordb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressSnapshot(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"documents":{}}`), 64)

	t.Run("None", func(t *testing.T) {
		out, err := compressSnapshot(payload, CompressionNone)
		require.NoError(t, err)
		assert.Equal(t, payload, out)
	})

	for _, c := range []Compression{CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			compressed, err := compressSnapshot(payload, c)
			require.NoError(t, err)
			assert.NotEqual(t, payload, compressed)
			assert.Less(t, len(compressed), len(payload))

			out, err := decompressSnapshot(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestDecompressSnapshotPassthrough(t *testing.T) {
	// Plain JSON never starts with a compression frame magic.
	plain := []byte(`{"config":{}}`)
	out, err := decompressSnapshot(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}
