package checker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
)

// Rule weights.
const (
	WeightIPHost           = 3
	WeightSuspiciousTLD    = 2
	WeightAtSymbol         = 2
	WeightExcessiveHyphens = 1
	WeightExcessiveLength  = 1
	WeightSSLUnverified    = 2
)

// Rule limits; both comparisons are strictly greater than.
const (
	MaxHostHyphens = 3
	MaxURLLength   = 100
)

// SuspiciousTLDs is the denylist checked by SuspiciousTLDRule, in match order.
var SuspiciousTLDs = []string{"xyz", "top", "tk", "ml", "ga", "cf", "gq"}

// Four dot-separated groups of 1-3 digits. Octet values are not range checked.
var ipLiteralPattern = regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}$`)

// DefaultRules returns the rule set in its fixed evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		IPHostRule{},
		SuspiciousTLDRule{TLDs: SuspiciousTLDs},
		AtSymbolRule{},
		ExcessiveHyphensRule{Max: MaxHostHyphens},
		ExcessiveLengthRule{Max: MaxURLLength},
	}
}

// IsIPLiteral reports whether host looks like a dotted IPv4 literal.
func IsIPLiteral(host string) bool {
	return ipLiteralPattern.MatchString(host)
}

// IPHostRule fires when the host is an IPv4 literal rather than a name.
type IPHostRule struct{}

func (IPHostRule) ID() risk.RuleID { return risk.RuleIPHost }

func (r IPHostRule) Evaluate(t *Target) (risk.Finding, bool) {
	if !IsIPLiteral(t.Host) {
		return risk.Finding{}, false
	}
	return risk.NewFinding(r.ID(), "Uses IP address instead of domain", WeightIPHost), true
}

// SuspiciousTLDRule fires on the first denylisted suffix the host ends with.
type SuspiciousTLDRule struct {
	TLDs []string
}

func (SuspiciousTLDRule) ID() risk.RuleID { return risk.RuleSuspiciousTLD }

func (r SuspiciousTLDRule) Evaluate(t *Target) (risk.Finding, bool) {
	for _, tld := range r.TLDs {
		if strings.HasSuffix(t.Host, "."+tld) {
			return risk.NewFinding(r.ID(), fmt.Sprintf("Suspicious TLD: .%s", tld), WeightSuspiciousTLD), true
		}
	}
	return risk.Finding{}, false
}

// AtSymbolRule fires on any '@' in the full URL, a classic credential-spoofing trick.
type AtSymbolRule struct{}

func (AtSymbolRule) ID() risk.RuleID { return risk.RuleAtSymbol }

func (r AtSymbolRule) Evaluate(t *Target) (risk.Finding, bool) {
	if !strings.Contains(t.FullURL, "@") {
		return risk.Finding{}, false
	}
	return risk.NewFinding(r.ID(), "Contains '@' symbol (possible credential spoofing)", WeightAtSymbol), true
}

// ExcessiveHyphensRule fires when the host holds more than Max hyphens.
type ExcessiveHyphensRule struct {
	Max int
}

func (ExcessiveHyphensRule) ID() risk.RuleID { return risk.RuleExcessiveHyphens }

func (r ExcessiveHyphensRule) Evaluate(t *Target) (risk.Finding, bool) {
	n := strings.Count(t.Host, "-")
	if n <= r.Max {
		return risk.Finding{}, false
	}
	return risk.NewFinding(r.ID(), fmt.Sprintf("Too many hyphens in domain (%d)", n), WeightExcessiveHyphens), true
}

// ExcessiveLengthRule fires when the full URL is longer than Max characters.
type ExcessiveLengthRule struct {
	Max int
}

func (ExcessiveLengthRule) ID() risk.RuleID { return risk.RuleExcessiveLength }

func (r ExcessiveLengthRule) Evaluate(t *Target) (risk.Finding, bool) {
	n := utf8.RuneCountInString(t.FullURL)
	if n <= r.Max {
		return risk.Finding{}, false
	}
	return risk.NewFinding(r.ID(), fmt.Sprintf("URL is unusually long (%d characters)", n), WeightExcessiveLength), true
}
