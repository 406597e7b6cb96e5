package http

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase92RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 91, 92, 93, 8464, math.MaxUint32, math.MaxUint64}
	for _, n := range cases {
		encoded := EncodeBase92(n)
		decoded, err := DecodeBase92(encoded)
		require.NoError(t, err)
		assert.Equal(t, n, decoded, "round trip for %d via %q", n, encoded)
	}
}

func TestDecodeBase92Rejects(t *testing.T) {
	_, err := DecodeBase92("")
	assert.Error(t, err)

	_, err = DecodeBase92("\"quote-not-in-alphabet")
	assert.Error(t, err)
}

func TestNewEntityTagIsStrongAndStable(t *testing.T) {
	tag := NewEntityTag(42, 1024, 1_700_000_000_000)
	assert.False(t, tag.Weak)
	assert.Equal(t, tag, NewEntityTag(42, 1024, 1_700_000_000_000))
	assert.NotEqual(t, tag.Value, NewEntityTag(42, 1025, 1_700_000_000_000).Value)
}

func TestWeakenProducesWeakCopy(t *testing.T) {
	strong := NewEntityTag(1, 2, 3)
	weak := strong.Weaken()
	assert.True(t, weak.Weak)
	assert.True(t, weak.WeakEq(strong))
	assert.False(t, weak.StrongEq(strong))
}

func TestETagListNoneMatches(t *testing.T) {
	tag := NewEntityTag(1, 2, 3)

	assert.False(t, ETagList{Any: true}.NoneMatches(tag))
	assert.True(t, ParseETagList("").NoneMatches(tag))
	assert.False(t, ParseETagList(`"`+tag.Value+`"`).NoneMatches(tag))
	assert.False(t, ParseETagList(`W/"`+tag.Value+`"`).NoneMatches(tag), "weak comparison for If-None-Match")
	assert.True(t, ParseETagList(`"something-else"`).NoneMatches(tag))
}

func TestETagListAnyMatches(t *testing.T) {
	tag := NewEntityTag(1, 2, 3)

	assert.True(t, ETagList{}.AnyMatches(tag), "absent header is satisfied")
	assert.True(t, ParseETagList("*").AnyMatches(tag))
	assert.True(t, ParseETagList(`"`+tag.Value+`"`).AnyMatches(tag))
	assert.False(t, ParseETagList(`W/"`+tag.Value+`"`).AnyMatches(tag), "If-Match needs strong comparison")
	assert.False(t, ParseETagList(`"something-else"`).AnyMatches(tag))
}
