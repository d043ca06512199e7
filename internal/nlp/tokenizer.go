package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token is a single word token from an email text
type Token struct {
	Text   string
	Lower  string
	IsStop bool
}

// stopwords is a compact English stopword list. Tokens on this list never
// participate in semantic similarity checks.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"been": {}, "but": {}, "by": {}, "can": {}, "could": {}, "did": {},
	"do": {}, "does": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "here": {}, "him": {}, "his": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"me": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {},
	"our": {}, "out": {}, "she": {}, "so": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "up": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "which": {}, "who": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {},
}

// Tokenize splits text into word tokens. Punctuation is dropped during
// splitting, so every returned token is a word; stopwords are flagged
// rather than removed because sentiment scoring still needs them.
func Tokenize(text string) []Token {
	normalized := norm.NFKC.String(text)
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})

	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		lower := strings.ToLower(f)
		_, stop := stopwords[lower]
		tokens = append(tokens, Token{Text: f, Lower: lower, IsStop: stop})
	}
	return tokens
}

// IsStopword reports whether a word is on the stopword list
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}
