package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseHostDefaultsPort(t *testing.T) {
	h, err := ParseHost("Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "example.com", h.Hostname)
	assert.Equal(t, "80", h.Port)
}

func TestParseHostWithPort(t *testing.T) {
	h, err := ParseHost("example.com:8080")
	require.NoError(t, err)
	assert.Equal(t, "example.com", h.Hostname)
	assert.Equal(t, "8080", h.Port)
}

func TestParseHostRejectsEmpty(t *testing.T) {
	_, err := ParseHost("")
	assert.ErrorIs(t, err, ErrInvalidHost)
}

func TestParseHostRejectsBadPort(t *testing.T) {
	_, err := ParseHost("example.com:abc")
	assert.Error(t, err)
}

func TestHostListDecodesScalar(t *testing.T) {
	var list HostList
	require.NoError(t, yaml.Unmarshal([]byte(`"example.com:3000"`), &list))
	require.Len(t, list, 1)
	assert.Equal(t, Host{Hostname: "example.com", Port: "3000"}, list[0])
}

func TestHostListDecodesSequence(t *testing.T) {
	var list HostList
	require.NoError(t, yaml.Unmarshal([]byte("- a.test\n- b.test:81\n"), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a.test", list[0].Hostname)
	assert.Equal(t, "81", list[1].Port)
}
