package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
)

func TestParsePrincipal_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePrincipal("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects embedded whitespace", func(t *testing.T) {
		_, err := ParsePrincipal("ST1 TEST")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		_, err := ParsePrincipal(strings.Repeat("S", maxPrincipalLength+1))
		require.Error(t, err)
	})

	t.Run("accepts stacks style address", func(t *testing.T) {
		p, err := ParsePrincipal("ST1TEST")
		require.NoError(t, err)
		assert.Equal(t, Principal("ST1TEST"), p)
		assert.False(t, p.IsNull())
	})

	t.Run("null principal parses but is flagged", func(t *testing.T) {
		p, err := ParsePrincipal(string(NullPrincipal))
		require.NoError(t, err)
		assert.True(t, p.IsNull())
	})
}

func TestParseHeight(t *testing.T) {
	h, err := ParseHeight(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, Height(42), h)

	for _, in := range []string{"", "-1", "abc", "1.5"} {
		_, err := ParseHeight(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseContributionID(t *testing.T) {
	id, err := ParseContributionID("7")
	require.NoError(t, err)
	assert.Equal(t, ContributionID(7), id)
	assert.Equal(t, "7", id.String())

	_, err = ParseContributionID("-7")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDataHash(t *testing.T) {
	t.Run("round trips through hex", func(t *testing.T) {
		raw := make([]byte, DataHashLength)
		for i := range raw {
			raw[i] = byte(i)
		}
		h, ok := DataHashFromBytes(raw)
		require.True(t, ok)

		decoded, err := DecodeHex("0x" + h.String())
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, ok := DataHashFromBytes(make([]byte, 31))
		assert.False(t, ok)
		_, ok = DataHashFromBytes(make([]byte, 33))
		assert.False(t, ok)
	})

	t.Run("decode does not enforce length", func(t *testing.T) {
		b, err := DecodeHex("0101")
		require.NoError(t, err)
		assert.Len(t, b, 2)
	})

	t.Run("rejects non hex", func(t *testing.T) {
		_, err := DecodeHex("zz")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
