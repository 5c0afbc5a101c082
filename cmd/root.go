package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/khanhnv2901/urlscore/internal/application/analysis"
	"github.com/khanhnv2901/urlscore/internal/checker"
	"github.com/khanhnv2901/urlscore/internal/infrastructure/persistence/scanlog"
)

// streams are the process I/O handles a run reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// runtimeDeps are the collaborators tests replace.
type runtimeDeps struct {
	newProber func(cfg *CLIConfig, logger *zap.SugaredLogger) checker.CertificateProber
	now       func() time.Time
}

func defaultDeps() runtimeDeps {
	return runtimeDeps{
		newProber: func(cfg *CLIConfig, logger *zap.SugaredLogger) checker.CertificateProber {
			p := checker.NewTLSProber(logger)
			p.Timeout = cfg.Probe.Timeout()
			p.Retries = cfg.Probe.Retries
			return p
		},
		now: time.Now,
	}
}

// Execute runs urlscore against the process arguments and exits with its status.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Run executes one invocation and returns the exit code: the risk level's
// code on success, ExitUsage for usage and input errors.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	return run(ctx, args, streams{in: in, out: out, err: errOut}, defaultDeps())
}

func run(ctx context.Context, args []string, s streams, deps runtimeDeps) int {
	exitCode := 0
	root := newRootCmd(s, deps, &exitCode)
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	root.SetArgs(args)

	executed, err := root.ExecuteContextC(ctx)
	if err != nil {
		var usageErr *UsageError
		if !errors.As(err, &usageErr) {
			fmt.Fprintf(s.err, "%s %v\n", colorError("Error:"), err)
			return ExitUsage
		}
		fmt.Fprintf(s.err, "%s %v\n\n", colorError("Error:"), usageErr.Err)
		fmt.Fprint(s.err, root.UsageString())
		return ExitUsage
	}

	if helpRequested(executed) {
		return ExitUsage
	}
	return exitCode
}

func newRootCmd(s streams, deps runtimeDeps, exitCode *int) *cobra.Command {
	flagValues := newCLIConfig()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "urlscore",
		Short: "Heuristic URL risk scorer",
		Long: `Score a URL against a fixed set of phishing heuristics:
IP-literal host, suspicious TLD, '@' in URL, excessive hyphens, excessive
length and TLS certificate verification.

Exit codes: 0 Low risk, 1 Medium risk, 2 High risk or usage error.`,
		Version:       versionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unexpected argument %q (use --url)", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(cmd.Flags(), cfgFile, flagValues)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Debug, s.err).With("run_id", uuid.NewString())
			defer func() { _ = logger.Sync() }()

			raw, err := resolveTargetInput(cfg.URL, cfg.NonInteractive, s.in, s.err)
			if err != nil {
				return err
			}

			svc := analysis.NewService(analysis.Config{
				Prober:        deps.newProber(cfg, logger),
				ReputationKey: cfg.ReputationKey,
				Logger:        logger,
				Now:           deps.now,
			})

			res, err := svc.Analyze(cmd.Context(), raw)
			if err != nil {
				return &UsageError{Err: err}
			}

			logger.Debugw("certificate probe result",
				"host", res.Target.Host,
				"status", res.Certificate.Status.String(),
				"not_after", res.Certificate.NotAfter,
			)

			logPath := appendScanLog(cfg, res, logger)

			if err := renderResult(s.out, cfg.Output, res, logPath); err != nil {
				logger.Warnw("failed to render result", "error", err)
			}

			*exitCode = res.Report.Level().ExitCode()
			return nil
		},
	}

	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	cmd.SetVersionTemplate("urlscore version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&flagValues.URL, "url", "u", "", "target URL (prompted for when omitted)")
	flags.StringVarP(&flagValues.Output, "output", "o", outputPretty, "output format: json or pretty")
	flags.BoolVar(&flagValues.NonInteractive, "noninteractive", false, "never prompt; a missing URL is an error")
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.urlscore.yaml)")
	flags.StringVar(&flagValues.LogDir, "log-dir", "", "directory for urlscore.log (default is the user data directory)")
	flags.IntVar(&flagValues.Probe.TimeoutSecs, "timeout", flagValues.Probe.TimeoutSecs, "certificate probe timeout in seconds")
	flags.IntVar(&flagValues.Probe.Retries, "retries", 0, "extra certificate probe attempts within the timeout")
	flags.BoolVar(&flagValues.Debug, "debug", false, "enable debug logging on stderr")

	return cmd
}

// appendScanLog writes the audit line and returns the log path, or "" when
// the line could not be written. Failures never affect the exit code.
func appendScanLog(cfg *CLIConfig, res *analysis.Result, logger *zap.SugaredLogger) string {
	dir := cfg.LogDir
	if dir == "" {
		dataDir, err := getDataDir()
		if err != nil {
			logger.Warnw("scan log disabled", "error", err)
			return ""
		}
		dir = dataDir
	}

	log, err := scanlog.New(dir)
	if err != nil {
		logger.Warnw("scan log unavailable", "dir", dir, "error", err)
		return ""
	}

	entry := scanlog.Entry{Timestamp: res.CheckedAt, URL: res.Target.FullURL, Report: res.Report}
	if err := log.Append(entry); err != nil {
		logger.Warnw("failed to append scan log", "path", log.Path(), "error", err)
		return ""
	}
	return log.Path()
}

func newLogger(debug bool, w io.Writer) *zap.SugaredLogger {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

func helpRequested(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	flag := cmd.Flags().Lookup("help")
	return flag != nil && flag.Changed
}
