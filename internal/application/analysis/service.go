package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/urlscore/internal/checker"
	"github.com/khanhnv2901/urlscore/internal/domain/risk"
)

// Result is one completed analysis run.
type Result struct {
	Target      *checker.Target
	Report      *risk.ScoreReport
	Certificate checker.CertificateResult
	CheckedAt   time.Time
}

// Config wires the collaborators used by Service.
type Config struct {
	Rules         []checker.Rule
	Runner        *checker.Runner
	Prober        checker.CertificateProber
	Reputation    checker.ReputationService
	ReputationKey string
	Logger        *zap.SugaredLogger
	Now           func() time.Time
}

// Service runs the normalize, rules, probe, aggregate pipeline.
type Service struct {
	rules         []checker.Rule
	runner        *checker.Runner
	prober        checker.CertificateProber
	reputation    checker.ReputationService
	reputationKey string
	logger        *zap.SugaredLogger
	now           func() time.Time
}

// NewService creates an analysis service, filling unset collaborators with defaults.
func NewService(cfg Config) *Service {
	s := &Service{
		rules:         cfg.Rules,
		runner:        cfg.Runner,
		prober:        cfg.Prober,
		reputation:    cfg.Reputation,
		reputationKey: cfg.ReputationKey,
		logger:        cfg.Logger,
		now:           cfg.Now,
	}

	if s.rules == nil {
		s.rules = checker.DefaultRules()
	}
	if s.runner == nil {
		s.runner = &checker.Runner{Concurrency: len(s.rules)}
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	if s.prober == nil {
		s.prober = checker.NewTLSProber(s.logger)
	}
	if s.reputation == nil {
		s.reputation = checker.NoopReputation{}
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// Analyze scores one raw URL. The only error is invalid input; every
// analysis-time failure ends up as a finding or note in the report.
func (s *Service) Analyze(ctx context.Context, raw string) (*Result, error) {
	target, err := checker.ParseTarget(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize target: %w", err)
	}

	logger := s.logger.With("input", target.Original, "url", target.FullURL, "host", target.Host)

	findings := s.runner.RunRules(target, s.rules)
	logger.Debugw("heuristic rules evaluated", "triggered", len(findings))

	var notes []risk.Note

	cert := s.prober.Probe(ctx, target.Host)
	if f, ok := cert.Finding(); ok {
		findings = append(findings, f)
		logger.Debugw("certificate probe failed", "status", cert.Status.String(), "error", cert.Err)
	}
	if n, ok := cert.Note(); ok {
		notes = append(notes, n)
	}

	if n, ok := checker.RegistrableDomainNote(target); ok {
		notes = append(notes, n)
	}

	if n, ok := checker.ReputationKeyNote(s.reputationKey); ok {
		notes = append(notes, n)
		extra, err := s.reputation.Lookup(ctx, target)
		if err != nil {
			logger.Warnw("reputation lookup failed", "service", s.reputation.Name(), "error", err)
		}
		notes = append(notes, extra...)
	}

	report := risk.Aggregate(findings, notes)
	logger.Infow("analysis complete",
		"score", report.TotalScore(),
		"risk", report.Level().String(),
		"certificate", cert.Status.String(),
	)

	return &Result{
		Target:      target,
		Report:      report,
		Certificate: cert,
		CheckedAt:   s.now().UTC(),
	}, nil
}
