// Package main provides the CLI entrypoint for tuidict.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuidict/internal/config"
	"github.com/verte-zerg/tuidict/internal/dictionary"
	"github.com/verte-zerg/tuidict/internal/model"
	"github.com/verte-zerg/tuidict/internal/picker"
	"github.com/verte-zerg/tuidict/internal/session"
	"github.com/verte-zerg/tuidict/internal/stats"
	"github.com/verte-zerg/tuidict/internal/store"
	"github.com/verte-zerg/tuidict/internal/tui"
)

const (
	defaultHistoryLast = 20
	defaultHistoryTop  = 10
)

var (
	errWordNotFound = errors.New("word not found")
	errNotTerminal  = errors.New("browse needs a terminal on stdout")
)

var (
	sessionFile    string
	sessionSeed    int64
	sessionHistory bool
	sessionWidth   int

	historySince string
	historyLast  int
	historyTop   int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuidict",
		Short:         "Text-mode dictionary lookup",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sessionFile, "file", "", "dictionary file to load before the menu")
	flags.Int64Var(&sessionSeed, "seed", 0, "seed for random word selection (default: clock)")
	flags.BoolVar(&sessionHistory, "history", false, "record lookups in the history database")
	flags.IntVar(&sessionWidth, "width", 0, "wrap width for definitions (0: no wrapping)")

	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newRandomCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolveConfig overlays the config file under flags the user did not set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &sessionFile, fileCfg.Session.File)
	applyInt64Config(cmd, "seed", &sessionSeed, fileCfg.Session.Seed)
	applyBoolConfig(cmd, "history", &sessionHistory, fileCfg.Session.History)
	applyIntConfig(cmd, "width", &sessionWidth, fileCfg.Session.Width)

	cfg := model.Config{
		File:    sessionFile,
		Seed:    sessionSeed,
		HasSeed: cmd.Flags().Changed("seed") || fileCfg.Session.Seed != nil,
		History: sessionHistory,
		Width:   sessionWidth,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []session.Option{
		session.WithPicker(newPicker(cfg)),
		session.WithWidth(cfg.Width),
	}
	if st != nil {
		opts = append(opts, session.WithRecorder(st))
	}
	if cfg.File != "" {
		opts = append(opts, session.Preload(cfg.File))
	}

	s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
	if err := s.Run(cmd.Context()); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup FILE WORD",
		Short: "Look up a single word",
		Args:  cobra.ExactArgs(2),
		RunE:  runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := dictionary.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	st, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	word := strings.TrimSpace(args[1])
	entry, found := dict.Find(word)
	recordLookup(cmd.Context(), st, model.Lookup{
		DictionaryPath: dict.Path,
		Kind:           model.LookupSearch,
		Term:           word,
		Found:          found,
		EntryName:      entry.Name,
	})
	if !found {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Word not found."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return errWordNotFound
	}
	return writeEntry(cmd, entry, cfg.Width)
}

func newRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random FILE",
		Short: "Show a random word",
		Args:  cobra.ExactArgs(1),
		RunE:  runRandomCmd,
	}
}

func runRandomCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := dictionary.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	entry, ok := newPicker(cfg).Pick(dict)
	if !ok {
		return fmt.Errorf("dictionary %s has no entries", args[0])
	}
	st, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	recordLookup(cmd.Context(), st, model.Lookup{
		DictionaryPath: dict.Path,
		Kind:           model.LookupRandom,
		Found:          true,
		EntryName:      entry.Name,
	})
	return writeEntry(cmd, entry, cfg.Width)
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse a dictionary in a full-screen TUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := dictionary.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	if err := requireTerminal(); err != nil {
		return err
	}
	st, closeStore, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var recorder tui.Recorder
	if st != nil {
		recorder = st
	}
	m := tui.NewModel(dict, newPicker(cfg), recorder)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show lookup history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N lookups")
	cmd.Flags().IntVar(&historyTop, "top", defaultHistoryTop, "number of top searched terms")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyIntConfig(cmd, "top", &historyTop, fileCfg.History.Top)

	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}

	dbPath := config.DefaultDBPath()
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			logErrln("No history recorded yet. Enable with: tuidict --history")
			return nil
		}
		return fmt.Errorf("failed to stat history db: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, model.HistoryConfig{
		Since: sinceTime,
		Last:  historyLast,
		Top:   historyTop,
	})
	if err != nil {
		return err
	}
	return stats.RenderReport(cmd.OutOrStdout(), report)
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
	path := config.DefaultConfigPath()
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

// openHistory opens the history store when enabled. The returned close
// function is always safe to call.
func openHistory(cfg model.Config) (*store.Store, func(), error) {
	if !cfg.History {
		return nil, func() {}, nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
}

func recordLookup(ctx context.Context, st *store.Store, lookup model.Lookup) {
	if st == nil {
		return
	}
	lookup.LookedUpAt = time.Now()
	if err := st.Record(ctx, lookup); err != nil {
		logErrf("failed to record lookup: %v\n", err)
	}
}

func writeEntry(cmd *cobra.Command, entry dictionary.Entry, width int) error {
	out := cmd.OutOrStdout()
	text := session.FormatEntry(entry, width, lipglossLabel(out))
	if _, err := fmt.Fprint(out, strings.TrimPrefix(text, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func lipglossLabel(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true)
}

func newPicker(cfg model.Config) *picker.Picker {
	if cfg.HasSeed {
		return picker.NewSeeded(cfg.Seed)
	}
	return picker.New()
}

// requireTerminal fails when stdout cannot host a full-screen program.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
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

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuidict configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# file = "words.txt"      # Dictionary loaded before the menu
# seed = 42               # Seed for random word selection
# history = false         # Record lookups in the history database
# width = 0               # Wrap width for definitions (0: no wrapping)

[history]
# last = %d               # Lookups shown by "tuidict history"
# top = %d                # Top searched terms shown
`,
		defaultHistoryLast,
		defaultHistoryTop,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
