package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
	consts "github.com/khanhnv2901/urlscore/internal/shared/constants"
)

// CertificateStatus is the outcome of one certificate probe.
type CertificateStatus int

const (
	CertificateUnreachable CertificateStatus = iota
	CertificateInvalid
	CertificateValid
)

func (s CertificateStatus) String() string {
	switch s {
	case CertificateValid:
		return "valid"
	case CertificateInvalid:
		return "invalid"
	default:
		return "unreachable"
	}
}

// CertificateResult holds exactly one probe outcome. NotAfter is set only
// when Status is CertificateValid; Err carries the folded failure otherwise.
type CertificateResult struct {
	Status   CertificateStatus
	NotAfter string
	Err      error
}

// Finding returns the scored failure finding for Invalid and Unreachable outcomes.
func (r CertificateResult) Finding() (risk.Finding, bool) {
	if r.Status == CertificateValid {
		return risk.Finding{}, false
	}
	return risk.NewFinding(risk.RuleSSLUnverified, "Could not verify SSL certificate or connection failed", WeightSSLUnverified), true
}

// Note returns the expiry annotation for a valid certificate.
func (r CertificateResult) Note() (risk.Note, bool) {
	if r.Status != CertificateValid {
		return risk.Note{}, false
	}
	return risk.NewNote("SSL certificate valid until: " + r.NotAfter), true
}

// TLSProber performs a TLS handshake against host:Port with SNI set to host.
// All transport and verification failures are folded into the result.
type TLSProber struct {
	Timeout       time.Duration // Wall-clock bound for the whole probe, retries included
	Port          string
	Retries       int           // Extra attempts after an unreachable outcome; negative means none
	RetryInterval time.Duration // Minimum spacing between attempts
	RootCAs       *x509.CertPool
	Logger        *zap.SugaredLogger
}

// NewTLSProber returns a prober with default port and timeout.
func NewTLSProber(logger *zap.SugaredLogger) *TLSProber {
	return &TLSProber{
		Timeout:       consts.DefaultProbeTimeout,
		Port:          consts.DefaultProbePort,
		RetryInterval: consts.DefaultProbeRetryInterval,
		Logger:        logger,
	}
}

// Probe never blocks longer than Timeout.
func (p *TLSProber) Probe(ctx context.Context, host string) CertificateResult {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}
	interval := p.RetryInterval
	if interval <= 0 {
		interval = consts.DefaultProbeRetryInterval
	}
	retries := p.Retries
	if retries < 0 {
		retries = 0
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := p.logger()
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	result := CertificateResult{Status: CertificateUnreachable, Err: errors.New("probe not attempted")}

	for attempt := 0; attempt <= retries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			if attempt == 0 {
				result.Err = err
			}
			break
		}

		result = p.handshake(ctx, host)
		logger.Debugw("certificate probe attempt",
			"host", host,
			"attempt", attempt+1,
			"status", result.Status.String(),
			"error", errString(result.Err),
		)

		if result.Status != CertificateUnreachable || ctx.Err() != nil {
			break
		}
	}

	return result
}

func (p *TLSProber) handshake(ctx context.Context, host string) CertificateResult {
	if host == "" {
		return CertificateResult{Status: CertificateUnreachable, Err: errors.New("empty host")}
	}

	port := p.Port
	if port == "" {
		port = consts.DefaultProbePort
	}

	// an IPv6 literal arrives bracketed from the URL; JoinHostPort adds its own
	name := unbracket(host)

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config: &tls.Config{
			ServerName: name,
			RootCAs:    p.RootCAs,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(name, port))
	if err != nil {
		if isVerificationError(err) {
			return CertificateResult{Status: CertificateInvalid, Err: err}
		}
		return CertificateResult{Status: CertificateUnreachable, Err: err}
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return CertificateResult{Status: CertificateInvalid, Err: fmt.Errorf("unexpected connection type %T", conn)}
	}

	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 || state.PeerCertificates[0].NotAfter.IsZero() {
		return CertificateResult{Status: CertificateInvalid, Err: errors.New("certificate carries no expiry")}
	}

	return CertificateResult{
		Status:   CertificateValid,
		NotAfter: state.PeerCertificates[0].NotAfter.UTC().Format(consts.CertNotAfterLayout),
	}
}

func (p *TLSProber) logger() *zap.SugaredLogger {
	if p.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return p.Logger
}

func unbracket(host string) string {
	if len(host) > 2 && strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		return host[1 : len(host)-1]
	}
	return host
}

func isVerificationError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError

	return errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
