package checker

import (
	"context"
	"sync"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
)

// Rule is a side-effect-free heuristic over a normalized target.
type Rule interface {
	// ID returns the rule identifier carried by its findings
	ID() risk.RuleID

	// Evaluate reports a finding when the rule fires
	Evaluate(target *Target) (risk.Finding, bool)
}

// CertificateProber checks whether a host presents a verifiable certificate.
type CertificateProber interface {
	Probe(ctx context.Context, host string) CertificateResult
}

// Runner evaluates rules with a bounded worker pool.
type Runner struct {
	Concurrency int // Maximum number of rules evaluated at once
}

// RunRules evaluates every rule against the target. Findings come back in the
// order of the rules slice no matter which worker finishes first.
func (r *Runner) RunRules(target *Target, rules []Rule) []risk.Finding {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type slot struct {
		finding risk.Finding
		fired   bool
	}

	slots := make([]slot, len(rules))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, rule := range rules {
		wg.Add(1)
		go func(i int, rule Rule) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			f, ok := rule.Evaluate(target)
			slots[i] = slot{finding: f, fired: ok}
		}(i, rule)
	}

	wg.Wait()

	findings := make([]risk.Finding, 0, len(rules))
	for _, s := range slots {
		if s.fired {
			findings = append(findings, s.finding)
		}
	}
	return findings
}
