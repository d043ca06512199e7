package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTruncateTextRespectsRuneBoundaries(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// 10 two-byte runes; a cut at 5 bytes lands mid-rune
	text := strings.Repeat("é", 10)
	out := tp.TruncateText(text, 5)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, 4, len(out))

	require.Equal(t, "abc", tp.TruncateText("abc", 5))
	require.Equal(t, "abcde", tp.TruncateText("abcdef", 5))
	require.Equal(t, "abc", tp.TruncateText("abc", 0))
}

func TestSanitizeUTF8DropsInvalidSequences(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	require.Equal(t, "plain ascii", tp.SanitizeUTF8("plain ascii"))

	dirty := "due\xfftomorrow"
	clean := tp.SanitizeUTF8(dirty)
	require.True(t, utf8.ValidString(clean))
	require.Equal(t, "duetomorrow", clean)
}

func TestProcessTextTruncatesThenSanitizes(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	out := tp.ProcessText("héllo\xfe world", 7)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, "héllo", out)
}
