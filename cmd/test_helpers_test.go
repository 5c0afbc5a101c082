package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/khanhnv2901/urlscore/internal/checker"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type fakeProber struct {
	result checker.CertificateResult
	hosts  []string
}

func (f *fakeProber) Probe(_ context.Context, host string) checker.CertificateResult {
	f.hosts = append(f.hosts, host)
	return f.result
}

func unreachableProber() *fakeProber {
	return &fakeProber{result: checker.CertificateResult{Status: checker.CertificateUnreachable, Err: errors.New("i/o timeout")}}
}

type runOutput struct {
	code   int
	stdout string
	stderr string
}

// isolateEnv points HOME, the data dir and every URLSCORE_* key at test-owned values.
func isolateEnv(t *testing.T) string {
	t.Helper()

	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	dataDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(dataDirEnvVar, dataDir)
	t.Setenv(reputationKeyEnv, "")
	for _, key := range []string{"URL", "OUTPUT", "NONINTERACTIVE", "LOG_DIR", "DEBUG", "PROBE_TIMEOUT_SECS", "PROBE_RETRIES"} {
		t.Setenv(envPrefix+"_"+key, "")
	}
	return dataDir
}

func runWith(t *testing.T, prober checker.CertificateProber, stdin string, args ...string) runOutput {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps := runtimeDeps{
		newProber: func(*CLIConfig, *zap.SugaredLogger) checker.CertificateProber { return prober },
		now:       func() time.Time { return fixedNow },
	}

	code := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &stdout, err: &stderr}, deps)
	return runOutput{code: code, stdout: stdout.String(), stderr: stderr.String()}
}
