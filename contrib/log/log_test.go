package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	records [][]interface{}
	levels  []Level
}

func (r *recordingLogger) Log(level Level, keyvals ...interface{}) error {
	r.levels = append(r.levels, level)
	r.records = append(r.records, keyvals)
	return nil
}

func TestHelperFormatsMessage(t *testing.T) {
	rec := &recordingLogger{}
	h := NewHelper(rec)
	h.Infof("hello %s", "world")

	require.Len(t, rec.records, 1)
	assert.Equal(t, LevelInfo, rec.levels[0])
	assert.Equal(t, []interface{}{DefaultMessageKey, "hello world"}, rec.records[0])
}

func TestHelperErrorwPassesKeyvalsThrough(t *testing.T) {
	rec := &recordingLogger{}
	h := NewHelper(rec)
	h.Errorw(DefaultMessageKey, "failed", "reason", "timeout")

	require.Len(t, rec.records, 1)
	assert.Equal(t, LevelError, rec.levels[0])
	assert.Equal(t, []interface{}{DefaultMessageKey, "failed", "reason", "timeout"}, rec.records[0])
}

func TestWithBindsPrefixKeyvals(t *testing.T) {
	rec := &recordingLogger{}
	bound := With(rec, "component", "test")
	_ = bound.Log(LevelWarn, "msg", "x")

	require.Len(t, rec.records, 1)
	assert.Equal(t, []interface{}{"component", "test", "msg", "x"}, rec.records[0])
}

func TestFilterDropsBelowLevel(t *testing.T) {
	rec := &recordingLogger{}
	filtered := NewFilter(rec, FilterLevel(LevelWarn))

	_ = filtered.Log(LevelInfo, "msg", "dropped")
	_ = filtered.Log(LevelWarn, "msg", "kept")

	require.Len(t, rec.records, 1)
	assert.Equal(t, []interface{}{"msg", "kept"}, rec.records[0])
}

func TestSetLoggerAndGetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	rec := &recordingLogger{}
	SetLogger(rec)
	Infof("via package-level: %d", 42)

	require.Len(t, rec.records, 1)
	assert.Equal(t, []interface{}{DefaultMessageKey, "via package-level: 42"}, rec.records[0])
}
