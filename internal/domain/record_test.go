package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords(t *testing.T) {
	t.Run("strings nulls and numbers", func(t *testing.T) {
		data := []byte(`[
			{"अ.क्र.":"1","जिल्हा":"सांगली","__2":"100.5","__3":null},
			{"अ.क्र.":2,"ok":true}
		]`)
		records, err := DecodeRecords(data)
		require.NoError(t, err)
		require.Len(t, records, 2)

		v, ok := records[0].Field("जिल्हा")
		assert.True(t, ok)
		assert.Equal(t, "सांगली", v)

		_, ok = records[0].Field("__3")
		assert.False(t, ok, "null cell reads as absent")

		_, ok = records[0].Field("missing")
		assert.False(t, ok)

		v, ok = records[1].Field("अ.क्र.")
		assert.True(t, ok)
		assert.Equal(t, "2", v)

		v, _ = records[1].Field("ok")
		assert.Equal(t, "true", v)
	})

	t.Run("null row", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[null, {"a":"b"}]`))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Nil(t, records[0])
		_, ok := records[0].Field("a")
		assert.False(t, ok)
	})

	t.Run("empty array", func(t *testing.T) {
		records, err := DecodeRecords([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	formatCases := map[string]string{
		"not json":        `{invalid`,
		"object":          `{"a":"b"}`,
		"top-level null":  `null`,
		"array of scalar": `[1, 2]`,
		"nested object":   `[{"a":{"b":"c"}}]`,
		"nested array":    `[{"a":["b"]}]`,
	}
	for name, payload := range formatCases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestSchemaWithOverrides(t *testing.T) {
	s := DefaultSchema().WithOverrides(Schema{Storage: "total", Name: "dam"})

	assert.Equal(t, "total", s.Storage)
	assert.Equal(t, "dam", s.Name)
	assert.Equal(t, "अ.क्र.", s.Sequence)
	assert.Equal(t, "__3", s.StoragePercent)
}
