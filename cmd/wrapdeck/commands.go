package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/wrapdeck/internal/analysis"
	"github.com/verte-zerg/wrapdeck/internal/config"
	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/export"
	"github.com/verte-zerg/wrapdeck/internal/historyui"
	"github.com/verte-zerg/wrapdeck/internal/logging"
	"github.com/verte-zerg/wrapdeck/internal/stats"
	"github.com/verte-zerg/wrapdeck/internal/store"
)

const (
	defaultDatasetFile  = "wrapped.json"
	defaultHistoryLimit = 20
	defaultSummaryWidth = 80
)

var (
	fetchOutput     string
	fetchURL        string
	historyLimit    int
	historyPlain    bool
	summaryMarkdown bool
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <chat.txt>",
		Short: "Analyse a chat export and save the dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVarP(&fetchOutput, "output", "o", defaultDatasetFile, "dataset output path")
	cmd.Flags().StringVar(&fetchURL, "url", analysis.DefaultBaseURL, "analysis service url")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, args []string) error {
	_, fileCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "url", &fetchURL, fileCfg.Service.URL)

	logger, err := logging.New(config.DefaultLogPath(), logVerbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := analysis.NewClient(fetchURL)
	client.Logger = logger
	if !client.Health(ctx) {
		logErrf("analysis service at %s did not answer the health check\n", fetchURL)
	}

	logErrln("Uploading and analysing, this can take a while...")
	resp, err := client.Upload(ctx, args[0])
	if err != nil {
		logger.Error("upload failed", zap.String("path", args[0]), zap.Error(err))
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, resp.Raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format dataset: %w", err)
	}
	out.WriteByte('\n')
	if err := writeDataset(fetchOutput, out.Bytes()); err != nil {
		return err
	}
	logger.Info("dataset fetched",
		zap.String("session", resp.SessionID),
		zap.String("output", fetchOutput))
	logErrf("Wrote %s (session %s)\n", fetchOutput, resp.SessionID)
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [dataset]",
		Short: "Render the closing card without the TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(config.DefaultLogPath(), logVerbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ds, _, err := loadDataset(args, logger)
	if err != nil {
		return err
	}
	engine, err := deck.NewEngine(ds, nil)
	if err != nil {
		return fmt.Errorf("failed to build deck: %w", err)
	}
	view, err := engine.ViewAt(deck.LastSlide)
	if err != nil {
		return err
	}
	closing, ok := view.(deck.ClosingView)
	if !ok {
		return fmt.Errorf("last slide is %s, not the closing card", view.Kind())
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := newBridge(cfg, st, logger).Export(ctx, export.CardFromView(closing))
	if err != nil {
		return err
	}
	if res.Shared {
		logErrln("Path copied to clipboard.")
	}
	fmt.Println(res.Path)
	return nil
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [dataset]",
		Short: "Print a text summary of a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummaryCmd,
	}
	cmd.Flags().BoolVar(&summaryMarkdown, "markdown", false, "print raw markdown")
	return cmd
}

func runSummaryCmd(_ *cobra.Command, args []string) error {
	ds, _, err := loadDataset(args, zap.NewNop())
	if err != nil {
		return err
	}
	if summaryMarkdown {
		fmt.Print(stats.Markdown(ds))
		return nil
	}
	out, err := stats.Render(ds, terminalWidth())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show played decks and exported cards",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "rows per table (0 = all)")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print tables instead of opening the browser")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !historyPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		program := tea.NewProgram(historyui.NewModel(st, historyLimit), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	h, err := stats.BuildHistory(ctx, st, historyLimit)
	if err != nil {
		return err
	}
	return stats.RenderHistory(os.Stdout, h)
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the dataset JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := dataset.Schema()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(out, '\n'))
			return err
		},
	}
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSummaryWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultSummaryWidth
	}
	return w
}

func writeDataset(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close dataset: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move dataset: %w", err)
	}
	return nil
}
