package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("The Report, due FRIDAY!")
	require.Len(t, tokens, 4)

	require.Equal(t, "the", tokens[0].Lower)
	require.True(t, tokens[0].IsStop)

	require.Equal(t, "report", tokens[1].Lower)
	require.False(t, tokens[1].IsStop)

	require.Equal(t, "FRIDAY", tokens[3].Text)
	require.Equal(t, "friday", tokens[3].Lower)
}

func TestTokenizeKeepsContractions(t *testing.T) {
	tokens := Tokenize("don't panic")
	require.Len(t, tokens, 2)
	require.Equal(t, "don't", tokens[0].Lower)
}

func TestTokenizeEmpty(t *testing.T) {
	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("!!! ---"))
}
