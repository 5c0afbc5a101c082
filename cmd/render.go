package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/khanhnv2901/urlscore/internal/application/analysis"
)

const banner = `             _
 _   _ _ __| |___  ___ ___  _ __ ___
| | | | '__| / __|/ __/ _ \| '__/ _ \
| |_| | |  | \__ \ (_| (_) | | |  __/
 \__,_|_|  |_|___/\___\___/|_|  \___|
`

// jsonReport is the machine-readable output schema.
type jsonReport struct {
	URL    string   `json:"url"`
	Score  int      `json:"score"`
	Risk   string   `json:"risk"`
	Issues []string `json:"issues"`
	Notes  []string `json:"notes"`
}

func renderResult(w io.Writer, format string, res *analysis.Result, logPath string) error {
	switch format {
	case outputJSON:
		return renderJSON(w, res)
	default:
		return renderPretty(w, res, logPath)
	}
}

func renderJSON(w io.Writer, res *analysis.Result) error {
	out := jsonReport{
		URL:    res.Target.FullURL,
		Score:  res.Report.TotalScore(),
		Risk:   res.Report.Level().String(),
		Issues: res.Report.Issues(),
		Notes:  res.Report.NoteTexts(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

func renderPretty(w io.Writer, res *analysis.Result, logPath string) error {
	var b strings.Builder

	b.WriteString(colorInfo(banner))
	fmt.Fprintf(&b, "%s %s\n\n", colorBold("Target:"), res.Target.FullURL)

	b.WriteString(colorBold("Issues:") + "\n")
	findings := res.Report.Findings()
	if len(findings) == 0 {
		b.WriteString("  none\n")
	}
	for _, f := range findings {
		fmt.Fprintf(&b, "  %s %s\n", colorWarn(fmt.Sprintf("[+%d]", f.Weight)), f.Description)
	}

	b.WriteString("\n" + colorBold("Notes:") + "\n")
	notes := res.Report.Notes()
	if len(notes) == 0 {
		b.WriteString("  none\n")
	}
	for _, n := range notes {
		fmt.Fprintf(&b, "  - %s\n", n.Text)
	}

	fmt.Fprintf(&b, "\n%s %d\n", colorBold("Score:"), res.Report.TotalScore())
	fmt.Fprintf(&b, "%s %s\n", colorBold("Risk: "), formatRiskWithColor(res.Report.Level()))
	if logPath != "" {
		fmt.Fprintf(&b, "%s %s\n", colorBold("Log:  "), logPath)
	} else {
		fmt.Fprintf(&b, "%s %s\n", colorBold("Log:  "), colorWarn("not written"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
