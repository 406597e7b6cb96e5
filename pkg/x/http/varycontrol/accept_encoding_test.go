package varycontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldGzip(t *testing.T) {
	cases := []struct {
		header string
		want   bool
	}{
		{"compress, gzip", true},
		{"compress;q=0.5, gzip;q=1.0", true},
		{"gzip;q=1.0, identity;q=0.5, *;q=0", true},
		{"identity;q=0", false},
		{"*;q=0", false},
		{"gzip;q=0", false},
		{"*", true},
		{"gzip;q=0, *", false},
		{"identity;q=0, *", true},
		{"identity;q=0.5, gzip;q=1.0", true},
		{"identity;q=1.0, gzip;q=0.5", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ShouldGzip(c.header), "Accept-Encoding: %q", c.header)
	}
}

func TestParseAcceptEncodingSortsByQ(t *testing.T) {
	list := ParseAcceptEncoding("gzip;q=0.5,br;q=0.9,deflate")
	assert.Equal(t, "deflate", list[0].Value)
	assert.Equal(t, "br", list[1].Value)
	assert.Equal(t, "gzip", list[2].Value)
}
