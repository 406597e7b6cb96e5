package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestRateCountsWithinWindow(t *testing.T) {
	r := NewRequestRate(time.Second)
	r.Incr()
	r.Incr()
	r.Incr()
	assert.Equal(t, int64(3), r.Rate())
}
