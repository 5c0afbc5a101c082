package checker

import (
	"fmt"
	"net"
	"strings"

	sharedErrors "github.com/khanhnv2901/urlscore/internal/shared/errors"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// Target is a normalized URL ready for rule evaluation.
type Target struct {
	Original string // Input as received, whitespace trimmed
	FullURL  string // Always carries an http:// or https:// scheme
	Host     string // Scheme and path removed; a typed :port is kept
}

// ParseTarget normalizes raw input. Supported forms:
//   - example.com
//   - http://example.com/path
//   - HTTPS://example.com:8443/x
//
// A missing scheme becomes https://. Host is everything after the scheme up to
// the first '/'. No decoding, punycode conversion or port stripping happens.
func ParseTarget(raw string) (*Target, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %w", sharedErrors.ErrInvalidInput, sharedErrors.ErrEmptyTarget)
	}

	full := trimmed
	if schemeLength(full) == 0 {
		full = schemeHTTPS + full
	}

	host := full[schemeLength(full):]
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}

	return &Target{
		Original: trimmed,
		FullURL:  full,
		Host:     host,
	}, nil
}

// Hostname returns Host without a trailing :port, if one was typed.
func (t *Target) Hostname() string {
	if h, _, err := net.SplitHostPort(t.Host); err == nil {
		return h
	}
	return t.Host
}

func schemeLength(s string) int {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, schemeHTTPS):
		return len(schemeHTTPS)
	case strings.HasPrefix(lower, schemeHTTP):
		return len(schemeHTTP)
	default:
		return 0
	}
}
