package checker

import (
	"context"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
)

// ReputationService looks a target up in an external reputation source.
// Its notes are informational only and never change the score.
type ReputationService interface {
	Name() string
	Lookup(ctx context.Context, target *Target) ([]risk.Note, error)
}

// NoopReputation is the shipped service: no lookup is performed.
type NoopReputation struct{}

func (NoopReputation) Name() string { return "noop" }

func (NoopReputation) Lookup(context.Context, *Target) ([]risk.Note, error) {
	return nil, nil
}

// ReputationKeyNote reports that a reputation API key is configured.
func ReputationKeyNote(key string) (risk.Note, bool) {
	if strings.TrimSpace(key) == "" {
		return risk.Note{}, false
	}
	return risk.NewNote("Reputation service API key detected (lookup not enabled in this version)"), true
}

// RegistrableDomainNote names the eTLD+1 when the host is a subdomain of it.
func RegistrableDomainNote(t *Target) (risk.Note, bool) {
	host := strings.ToLower(strings.TrimSuffix(t.Hostname(), "."))
	if host == "" || IsIPLiteral(host) {
		return risk.Note{}, false
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil || registrable == host {
		return risk.Note{}, false
	}
	return risk.NewNote("Registrable domain: " + registrable), true
}
