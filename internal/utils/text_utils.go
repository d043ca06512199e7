package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor normalizes raw email bodies before analysis
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText cuts text down to at most maxSize bytes, backing the cut off
// to a rune boundary so a multi-byte character is never split
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	cut := maxSize
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	tp.logger.Debug("Email body truncated for analysis",
		zap.Int("body_bytes", len(text)),
		zap.Int("kept_bytes", cut),
		zap.Int("limit_bytes", maxSize))

	return text[:cut]
}

// SanitizeUTF8 drops any invalid UTF-8 sequences from the string
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	clean := strings.ToValidUTF8(text, "")

	tp.logger.Debug("Dropped invalid UTF-8 from email body",
		zap.Int("dropped_bytes", len(text)-len(clean)))

	return clean
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
