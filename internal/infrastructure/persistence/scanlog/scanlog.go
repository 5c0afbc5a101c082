package scanlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/khanhnv2901/urlscore/internal/domain/risk"
	consts "github.com/khanhnv2901/urlscore/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/urlscore/internal/shared/errors"
)

// Entry is one audited analysis run.
type Entry struct {
	Timestamp time.Time
	URL       string
	Report    *risk.ScoreReport
}

// ScanLog appends one line per run to a plain-text log file.
type ScanLog struct {
	path string
	mu   sync.Mutex
}

// New prepares dir and returns a log writing to dir/urlscore.log.
func New(dir string) (*ScanLog, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, sharedErrors.ErrEmptyLogDir
	}

	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path, err := resolveWithin(dir, consts.ScanLogFilename)
	if err != nil {
		return nil, err
	}

	return &ScanLog{path: path}, nil
}

// Path returns the absolute log file path.
func (l *ScanLog) Path() string {
	return l.path
}

// Append writes the entry as a single line. The file is opened with O_APPEND
// and the line goes out in one write, so concurrent writers never interleave
// partial lines.
func (l *ScanLog) Append(entry Entry) error {
	if entry.Report == nil {
		return fmt.Errorf("%w: %w", sharedErrors.ErrLogWrite, sharedErrors.ErrNilReport)
	}

	line := FormatLine(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", sharedErrors.ErrLogWrite, l.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("%w: %w", sharedErrors.ErrLogWrite, err)
	}

	return nil
}

// FormatLine renders
//
//	<RFC3339 UTC> | <url> | score=<n> | risk=<level> | issues=<a;b>
//
// terminated by a newline. Line breaks inside fields are flattened.
func FormatLine(entry Entry) string {
	issues := entry.Report.Issues()
	for i, issue := range issues {
		issues[i] = singleLine(issue)
	}

	return fmt.Sprintf("%s | %s | score=%d | risk=%s | issues=%s\n",
		entry.Timestamp.UTC().Format(time.RFC3339),
		singleLine(entry.URL),
		entry.Report.TotalScore(),
		entry.Report.Level(),
		strings.Join(issues, ";"),
	)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// resolveWithin joins name under base and refuses anything that would land
// outside of it.
func resolveWithin(base, name string) (string, error) {
	cleanBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve log directory: %w", err)
	}

	target := filepath.Join(cleanBase, name)
	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize log path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", sharedErrors.ErrPathEscape, target)
	}

	return target, nil
}
