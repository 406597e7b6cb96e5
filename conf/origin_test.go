package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOriginAnyAllowsEverything(t *testing.T) {
	var o Origin
	require.NoError(t, yaml.Unmarshal([]byte(`"*"`), &o))
	assert.True(t, o.Allows("https://anything.test"))
}

func TestOriginFewAllowsExactMatchOnly(t *testing.T) {
	var o Origin
	require.NoError(t, yaml.Unmarshal([]byte("- https://a.test\n- https://b.test\n"), &o))
	assert.True(t, o.Allows("https://a.test"))
	assert.False(t, o.Allows("https://c.test"))
}

func TestOriginRejectsNonStarScalar(t *testing.T) {
	var o Origin
	err := yaml.Unmarshal([]byte(`"nope"`), &o)
	assert.Error(t, err)
}
