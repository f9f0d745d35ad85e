package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_Value(t *testing.T) {
	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = JSONMap{"permission": "admin"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"permission":"admin"}`, v)
}

func TestJSONMap_Scan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"verified":true}`)))
	assert.Equal(t, JSONMap{"verified": true}, m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, JSONMap{}, m)

	require.NoError(t, m.Scan(`{"n":1}`))
	assert.Equal(t, JSONMap{"n": float64(1)}, m)

	assert.Error(t, m.Scan(42))
	assert.Error(t, m.Scan("not json"))
}
