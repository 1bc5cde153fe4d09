// Package main provides the CLI entrypoint for accesstwin.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/accesstwin/accesstwin/internal/aggregate"
	"github.com/accesstwin/accesstwin/internal/config"
	"github.com/accesstwin/accesstwin/internal/coverage"
	"github.com/accesstwin/accesstwin/internal/logging"
	"github.com/accesstwin/accesstwin/internal/model"
	"github.com/accesstwin/accesstwin/internal/profile"
	"github.com/accesstwin/accesstwin/internal/prompt"
	"github.com/accesstwin/accesstwin/internal/report"
	"github.com/accesstwin/accesstwin/internal/store"
	"github.com/accesstwin/accesstwin/internal/theme"
)

const (
	defaultJobs        = 4
	defaultHistoryLast = 20
	defaultEnvFile     = ".env"
	defaultLogLevel    = "warn"
)

var (
	configPath      string
	envFile         string
	themesFile      string
	storePath       string
	logLevel        string
	logFile         string
	forceColor      bool
	noRecord        bool
	maxTrackingLogs int
	maxNoteChars    int

	summaryJSON bool
	summaryJobs int
	summaryTop  int

	promptKind string

	historyLast int

	themesContext string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "accesstwin",
		Short:         "Privacy-preserving accessibility profile summaries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/accesstwin/config.toml)")
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with ACCESSTWIN_* overrides")
	flags.StringVar(&themesFile, "themes", "", "TOML file overriding the theme tables")
	flags.StringVar(&storePath, "store", "", "audit database path")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "rotated JSON log file (disabled when empty)")
	flags.BoolVar(&forceColor, "color", false, "force ANSI colors")
	flags.BoolVar(&noRecord, "no-record", false, "do not write snapshots or audit events")
	flags.IntVar(&maxTrackingLogs, "max-logs", prompt.DefaultMaxTrackingLogs, "tracking logs included in prompts")
	flags.IntVar(&maxNoteChars, "max-note-chars", prompt.DefaultMaxNoteChars, "characters kept per tracking note in prompts")

	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newPromptCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds what every command needs after config resolution.
type app struct {
	logger     *zap.Logger
	classifier *theme.Classifier
	aggregator *aggregate.Aggregator
}

func setup(cmd *cobra.Command) (*app, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg, os.LookupEnv); err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "themes", &themesFile, fileCfg.Themes.File)
	applyStringConfig(cmd, "store", &storePath, fileCfg.Store.Path)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyIntConfig(cmd, "max-logs", &maxTrackingLogs, fileCfg.Prompt.MaxTrackingLogs)
	applyIntConfig(cmd, "max-note-chars", &maxNoteChars, fileCfg.Prompt.MaxNoteChars)

	if err := validateSettings(); err != nil {
		return nil, err
	}
	if storePath == "" {
		storePath = config.DefaultDBPath()
	}

	logger, err := logging.New(logging.Options{Level: logLevel, File: logFile, Console: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}

	classifier, err := theme.Load(resolveThemesPath())
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved",
		zap.String("config", path),
		zap.String("themes", themesFile),
		zap.String("store", storePath),
	)

	return &app{
		logger:     logger,
		classifier: classifier,
		aggregator: aggregate.New(classifier, coverage.UDL(), coverage.POUR()),
	}, nil
}

func (a *app) close() {
	if err := a.logger.Sync(); err != nil {
		// Best-effort flush; stderr sync fails on some terminals.
		_ = err
	}
}

func resolveThemesPath() string {
	if themesFile != "" {
		return themesFile
	}
	if _, err := os.Stat(config.DefaultThemesPath()); err == nil {
		return config.DefaultThemesPath()
	}
	return ""
}

func validateSettings() error {
	if maxTrackingLogs <= 0 {
		return fmt.Errorf("--max-logs must be > 0")
	}
	if maxNoteChars <= 0 {
		return fmt.Errorf("--max-note-chars must be > 0")
	}
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary FILE...",
		Short: "Print teacher-safe summaries of profile documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSummaryCmd,
	}
	cmd.Flags().BoolVar(&summaryJSON, "json", false, "print summaries as JSON")
	cmd.Flags().IntVar(&summaryJobs, "jobs", defaultJobs, "documents aggregated in parallel")
	cmd.Flags().IntVar(&summaryTop, "top", 0, "themes shown per section (0 = all)")
	return cmd
}

type summaryResult struct {
	ProfileID int64              `json:"profile_id"`
	Summary   model.ThemeSummary `json:"summary"`
}

func runSummaryCmd(cmd *cobra.Command, args []string) error {
	if summaryJobs <= 0 {
		return fmt.Errorf("--jobs must be > 0")
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	started := time.Now()
	results, err := summarize(cmd.Context(), a.aggregator, args, summaryJobs)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	a.logger.Info("aggregated profiles",
		zap.String("run_id", runID),
		zap.Int("documents", len(results)),
		zap.Duration("elapsed", time.Since(started)),
	)

	out := cmd.OutOrStdout()
	format := "table"
	if summaryJSON {
		format = "json"
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		opts := report.Options{
			Width:     report.TerminalWidth(),
			Color:     report.ShouldUseColor(out, forceColor),
			TopThemes: summaryTop,
		}
		for i, r := range results {
			if i > 0 {
				if _, err := fmt.Fprintln(out); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			if err := report.RenderSummary(out, fmt.Sprintf("Profile %d", r.ProfileID), r.Summary, opts); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}

	if noRecord {
		return nil
	}
	return recordSummaries(cmd.Context(), a.logger, runID, format, results)
}

// summarize loads and aggregates documents concurrently. Results keep the
// order of paths. The confidential tier is dropped here.
func summarize(ctx context.Context, agg *aggregate.Aggregator, paths []string, jobs int) ([]summaryResult, error) {
	results := make([]summaryResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			doc, err := profile.Load(path)
			if err != nil {
				return err
			}
			summary, _ := agg.Aggregate(doc.Profile, doc.Supports, doc.TrackingLogs)
			results[i] = summaryResult{ProfileID: doc.Profile.ID, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func recordSummaries(ctx context.Context, logger *zap.Logger, runID, format string, results []summaryResult) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	now := time.Now()
	for _, r := range results {
		if _, err := st.InsertSnapshot(ctx, model.Snapshot{
			RunID:      runID,
			ProfileID:  r.ProfileID,
			RecordedAt: now,
			Summary:    r.Summary,
		}); err != nil {
			return fmt.Errorf("failed to record snapshot: %w", err)
		}
		if _, err := st.InsertAuditEvent(ctx, model.AuditEvent{
			RunID:      runID,
			ProfileID:  r.ProfileID,
			Action:     "summary",
			Detail:     "format=" + format,
			RecordedAt: now,
		}); err != nil {
			return fmt.Errorf("failed to record audit event: %w", err)
		}
	}
	logger.Info("snapshots recorded", zap.String("run_id", runID), zap.Int("count", len(results)))
	return nil
}

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt FILE",
		Short: "Print the AI system prompt for a profile document",
		Long: "Print the AI system prompt for a profile document.\n" +
			"The output contains confidential student context and is meant for the AI backend only.",
		Args: cobra.ExactArgs(1),
		RunE: runPromptCmd,
	}
	cmd.Flags().StringVar(&promptKind, "kind", string(prompt.KindCoach), "prompt kind (coach, insights, student)")
	return cmd
}

func runPromptCmd(cmd *cobra.Command, args []string) error {
	kind, err := prompt.ParseKind(promptKind)
	if err != nil {
		return err
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := profile.Load(args[0])
	if err != nil {
		return err
	}
	summary, confidential := a.aggregator.Aggregate(doc.Profile, doc.Supports, doc.TrackingLogs)
	text, err := prompt.Build(kind, summary, confidential, prompt.Limits{
		MaxTrackingLogs: maxTrackingLogs,
		MaxNoteChars:    maxNoteChars,
		Now:             time.Now(),
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	runID := uuid.NewString()
	a.logger.Info("prompt composed",
		zap.String("run_id", runID),
		zap.String("kind", string(kind)),
		zap.Int("chars", len(text)),
	)
	if noRecord {
		return nil
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if _, err := st.InsertAuditEvent(cmd.Context(), model.AuditEvent{
		RunID:      runID,
		ProfileID:  doc.Profile.ID,
		Action:     "prompt",
		Detail:     "kind=" + string(kind),
		RecordedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history PROFILE_ID",
		Short: "Show recorded summaries and the audit trail for a profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N snapshots (0 = all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	profileID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid profile id %q: %w", args[0], err)
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	h, err := report.BuildHistory(cmd.Context(), st, profileID, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	return report.RenderHistory(out, h, report.Options{
		Width: report.TerminalWidth(),
		Color: report.ShouldUseColor(out, forceColor),
	})
}

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the theme labels summaries can contain",
		Args:  cobra.NoArgs,
		RunE:  runThemesCmd,
	}
	cmd.Flags().StringVar(&themesContext, "context", "", "strength or goal (default: both)")
	return cmd
}

func runThemesCmd(cmd *cobra.Command, _ []string) error {
	contexts := []theme.Context{theme.ContextStrength, theme.ContextGoal}
	if themesContext != "" {
		ctx, err := theme.ParseContext(themesContext)
		if err != nil {
			return err
		}
		contexts = []theme.Context{ctx}
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	for i, ctx := range contexts {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if _, err := fmt.Fprintf(out, "%s themes:\n", ctx); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, label := range a.classifier.Vocabulary(ctx) {
			if _, err := fmt.Fprintf(out, "  %s\n", label); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# accesstwin configuration
# Uncomment a value to enable it. ACCESSTWIN_* environment variables override
# these values and CLI flags override both.

[themes]
# file = %q   # Theme table override ([[strength]] / [[goal]])

[prompt]
# max-tracking-logs = %d   # Tracking logs included in prompts
# max-note-chars = %d     # Characters kept per tracking note

[store]
# path = %q

[log]
# level = %q
# file = %q
`,
		config.DefaultThemesPath(),
		prompt.DefaultMaxTrackingLogs,
		prompt.DefaultMaxNoteChars,
		config.DefaultDBPath(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
