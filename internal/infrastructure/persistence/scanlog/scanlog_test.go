package scanlog

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
	sharedErrors "github.com/khanhnv2901/urlscore/internal/shared/errors"
)

func sampleReport() *risk.ScoreReport {
	return risk.Aggregate([]risk.Finding{
		risk.NewFinding(risk.RuleIPHost, "Uses IP address instead of domain", 3),
		risk.NewFinding(risk.RuleSSLUnverified, "Could not verify SSL certificate or connection failed", 2),
	}, nil)
}

func TestFormatLine(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	line := FormatLine(Entry{Timestamp: ts, URL: "http://1.2.3.4", Report: sampleReport()})

	want := "2026-03-04T04:06:07Z | http://1.2.3.4 | score=5 | risk=Medium | " +
		"issues=Uses IP address instead of domain;Could not verify SSL certificate or connection failed\n"
	if line != want {
		t.Fatalf("FormatLine =\n%q\nwant\n%q", line, want)
	}
}

func TestFormatLineNoIssues(t *testing.T) {
	line := FormatLine(Entry{Timestamp: time.Unix(0, 0), URL: "https://example.com", Report: risk.Aggregate(nil, nil)})
	if !strings.HasSuffix(line, "| score=0 | risk=Low | issues=\n") {
		t.Fatalf("unexpected line %q", line)
	}
}

func TestFormatLineFlattensNewlines(t *testing.T) {
	line := FormatLine(Entry{Timestamp: time.Unix(0, 0), URL: "https://a.com/\nforged", Report: risk.Aggregate(nil, nil)})
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", line)
	}
}

func TestAppendCreatesAndAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	log, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if log.Path() != filepath.Join(dir, "urlscore.log") {
		t.Fatalf("unexpected path %s", log.Path())
	}

	for i := 0; i < 2; i++ {
		if err := log.Append(Entry{Timestamp: time.Now(), URL: "http://1.2.3.4", Report: sampleReport()}); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	data, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
}

func TestAppendConcurrentWritersKeepLinesWhole(t *testing.T) {
	log, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = log.Append(Entry{Timestamp: time.Now(), URL: "http://1.2.3.4", Report: sampleReport()})
		}()
	}
	wg.Wait()

	f, err := os.Open(log.Path())
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		if !strings.Contains(scanner.Text(), "| score=5 | risk=Medium | issues=") {
			t.Fatalf("corrupted line: %q", scanner.Text())
		}
	}
	if lines != writers {
		t.Fatalf("expected %d lines, got %d", writers, lines)
	}
}

func TestNewRejectsEmptyDir(t *testing.T) {
	if _, err := New(" "); !errors.Is(err, sharedErrors.ErrEmptyLogDir) {
		t.Fatalf("expected ErrEmptyLogDir, got %v", err)
	}
}

func TestAppendNilReport(t *testing.T) {
	log, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := log.Append(Entry{}); !errors.Is(err, sharedErrors.ErrLogWrite) {
		t.Fatalf("expected ErrLogWrite, got %v", err)
	}
}

func TestAppendFailsWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := os.Mkdir(log.Path(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := log.Append(Entry{Timestamp: time.Now(), URL: "x", Report: sampleReport()}); !errors.Is(err, sharedErrors.ErrLogWrite) {
		t.Fatalf("expected ErrLogWrite, got %v", err)
	}
}

func TestResolveWithinBlocksEscape(t *testing.T) {
	base := t.TempDir()
	if _, err := resolveWithin(base, filepath.Join("..", "escape.log")); !errors.Is(err, sharedErrors.ErrPathEscape) {
		t.Fatalf("expected ErrPathEscape, got %v", err)
	}
}
