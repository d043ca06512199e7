package muted

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a sender's domain is muted. Mail from muted
// domains is still analyzed and stored, but never produces calendar events.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new muted-domain checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	// Normalize domains (lowercase)
	normalized := make([]string, len(domains))
	for i, domain := range domains {
		normalized[i] = strings.ToLower(strings.TrimSpace(domain))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized muted-domain checker", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsMuted checks if the sender's domain is muted
func (c *Checker) IsMuted(from string) bool {
	if len(c.domains) == 0 {
		return false
	}

	parts := strings.Split(from, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, muted := range c.domains {
		if muted == domain {
			if c.logger != nil {
				c.logger.Debug("Domain is muted",
					zap.String("domain", domain),
					zap.String("email", from))
			}
			return true
		}
	}

	return false
}
