package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaultsFillsServer(t *testing.T) {
	b := &Bootstrap{}
	require.NoError(t, ApplyDefaults(b))
	assert.Equal(t, DefaultAddr, b.Server.Addr)
	assert.Equal(t, DefaultAdminAddr, b.Server.AdminAddr)
	assert.Equal(t, DefaultConnectTimeout, b.Server.Timeouts.Connect)
}

func TestApplyDefaultsMergesGzipIntoSite(t *testing.T) {
	b := &Bootstrap{
		Server: &Server{Gzip: &Gzip{Threshold: 2000}},
		Sites:  []*Site{{}},
	}
	require.NoError(t, ApplyDefaults(b))
	require.NotNil(t, b.Sites[0].Gzip)
	assert.Equal(t, int64(2000), b.Sites[0].Gzip.Threshold)
}

func TestApplyDefaultsDoesNotOverrideSiteGzip(t *testing.T) {
	b := &Bootstrap{
		Server: &Server{Gzip: &Gzip{Threshold: 2000}},
		Sites:  []*Site{{Gzip: &Gzip{Threshold: 500}}},
	}
	require.NoError(t, ApplyDefaults(b))
	assert.Equal(t, int64(500), b.Sites[0].Gzip.Threshold)
}

func TestApplyDefaultsFallsBackToGzipThreshold(t *testing.T) {
	b := &Bootstrap{
		Sites: []*Site{{Gzip: &Gzip{}}},
	}
	require.NoError(t, ApplyDefaults(b))
	assert.Equal(t, DefaultGzipThreshold, b.Sites[0].Gzip.Threshold)
}
