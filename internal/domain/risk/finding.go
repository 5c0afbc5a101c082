package risk

// RuleID identifies the heuristic that produced a finding.
type RuleID string

const (
	RuleIPHost           RuleID = "ip_host"
	RuleSuspiciousTLD    RuleID = "suspicious_tld"
	RuleAtSymbol         RuleID = "at_symbol"
	RuleExcessiveHyphens RuleID = "excessive_hyphens"
	RuleExcessiveLength  RuleID = "excessive_length"
	RuleSSLUnverified    RuleID = "ssl_unverified"
)

// Finding is evidence that a rule fired, carrying its score contribution.
type Finding struct {
	RuleID      RuleID `json:"rule_id"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}

// NewFinding builds a finding, clamping negative weights to zero.
func NewFinding(id RuleID, description string, weight int) Finding {
	if weight < 0 {
		weight = 0
	}
	return Finding{RuleID: id, Description: description, Weight: weight}
}

// Note is a non-scoring observation such as a certificate expiry date.
type Note struct {
	Text string `json:"text"`
}

// NewNote wraps informational text.
func NewNote(text string) Note {
	return Note{Text: text}
}
