// Package main provides the CLI entrypoint for wrapdeck.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/wrapdeck/internal/analysis"
	"github.com/verte-zerg/wrapdeck/internal/config"
	"github.com/verte-zerg/wrapdeck/internal/counter"
	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/export"
	"github.com/verte-zerg/wrapdeck/internal/logging"
	"github.com/verte-zerg/wrapdeck/internal/model"
	"github.com/verte-zerg/wrapdeck/internal/store"
	"github.com/verte-zerg/wrapdeck/internal/tui"
)

const sampleName = "sample"

var (
	deckDragDistance    float64
	deckDragVelocity    float64
	deckCellWidth       float64
	deckCounterDuration float64
	deckTransitions     bool
	exportDir           string
	exportShare         bool
	logVerbose          bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wrapdeck [dataset]",
		Short:         "Play a chat wrapped deck in the terminal",
		Long:          "Play a chat wrapped deck in the terminal. Without a dataset the built-in sample is shown.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().Float64Var(&deckDragDistance, "drag-distance", deck.DefaultDragDistance, "horizontal drag distance that changes slides")
	rootCmd.Flags().Float64Var(&deckDragVelocity, "drag-velocity", deck.DefaultDragVelocity, "release velocity (units/ms) that changes slides")
	rootCmd.Flags().Float64Var(&deckCellWidth, "cell-width", tui.DefaultCellWidth, "drag units per terminal column")
	rootCmd.Flags().Float64Var(&deckCounterDuration, "counter-duration", counter.DefaultDuration.Seconds(), "count-up duration in seconds")
	rootCmd.Flags().BoolVar(&deckTransitions, "transitions", true, "animate slide transitions")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", config.DefaultExportDir(), "directory for exported cards")
	rootCmd.PersistentFlags().BoolVar(&exportShare, "share", true, "copy exported card path to the clipboard")
	rootCmd.PersistentFlags().BoolVar(&logVerbose, "verbose", false, "debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

// loadSettings merges the config file into flags the user did not set.
func loadSettings(cmd *cobra.Command) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "drag-distance", &deckDragDistance, fileCfg.Deck.DragDistance)
	applyFloatConfig(cmd, "drag-velocity", &deckDragVelocity, fileCfg.Deck.DragVelocity)
	applyFloatConfig(cmd, "cell-width", &deckCellWidth, fileCfg.Deck.CellWidth)
	applyFloatConfig(cmd, "counter-duration", &deckCounterDuration, fileCfg.Deck.CounterDuration)
	applyBoolConfig(cmd, "transitions", &deckTransitions, fileCfg.Deck.Transitions)
	applyStringConfig(cmd, "export-dir", &exportDir, fileCfg.Export.Dir)
	applyBoolConfig(cmd, "share", &exportShare, fileCfg.Export.Share)
	applyBoolConfig(cmd, "verbose", &logVerbose, fileCfg.Log.Verbose)

	cfg := model.Config{
		DragDistance:    deckDragDistance,
		DragVelocity:    deckDragVelocity,
		CellWidth:       deckCellWidth,
		CounterDuration: time.Duration(deckCounterDuration * float64(time.Second)),
		Transitions:     deckTransitions,
		ExportDir:       exportDir,
		Share:           exportShare,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
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

	ds, datasetPath, err := loadDataset(args, logger)
	if err != nil {
		return err
	}
	engine, err := deck.NewEngine(ds, nil)
	if err != nil {
		return fmt.Errorf("failed to build deck: %w", err)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := model.PresentationRecord{
		ID:          uuid.NewString(),
		DatasetPath: datasetPath,
		ChatName:    ds.Slide10.ChatName,
		StartedAt:   time.Now(),
	}
	if err := st.StartPresentation(ctx, rec); err != nil {
		logger.Warn("failed to record presentation", zap.Error(err))
	}
	logger.Info("presentation started",
		zap.String("id", rec.ID),
		zap.String("dataset", datasetPath))

	bridge := newBridge(cfg, st, logger)
	bridge.PresentationID = rec.ID

	m := tui.NewModel(ctx, engine, tui.Options{
		Thresholds:      deck.Thresholds{Distance: cfg.DragDistance, Velocity: cfg.DragVelocity},
		CellWidth:       cfg.CellWidth,
		CounterDuration: cfg.CounterDuration,
		Transitions:     cfg.Transitions,
		Bridge:          bridge,
		Logger:          logger,
	})
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, runErr := program.Run()

	viewed, completed := m.Progress()
	if err := st.FinishPresentation(context.Background(), rec.ID, time.Now(), viewed, completed); err != nil {
		logger.Warn("failed to finish presentation", zap.Error(err))
	}
	logger.Info("presentation finished",
		zap.String("id", rec.ID),
		zap.Int("slides_viewed", viewed),
		zap.Bool("completed", completed),
		zap.Int("restarts", m.Restarts()))
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

func newBridge(cfg model.Config, st *store.Store, logger *zap.Logger) *export.Bridge {
	var sharer export.Sharer
	if cfg.Share {
		sharer = export.ClipboardSharer{}
	}
	return export.NewBridge(cfg.ExportDir, sharer, st, logger)
}

// loadDataset reads the dataset named by args, or the built-in sample.
// Slides that fail to decode are logged to logger and shown empty.
func loadDataset(args []string, logger *zap.Logger) (*model.WrappedDataset, string, error) {
	if len(args) == 0 {
		ds, err := dataset.Sample()
		if err != nil {
			return nil, "", fmt.Errorf("failed to load sample: %w", err)
		}
		return ds, sampleName, nil
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return nil, "", err
	}
	ds, err := dataset.Decoder{Logger: logger}.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, path, nil
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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
	return fmt.Sprintf(`# wrapdeck configuration
# Uncomment a value to enable it. CLI flags override config values.

[deck]
# drag-distance = %.1f    # Horizontal drag distance that changes slides
# drag-velocity = %.1f     # Release velocity (units/ms) that changes slides
# cell-width = %.1f        # Drag units per terminal column
# counter-duration = %.1f  # Count-up duration in seconds
# transitions = true      # Animate slide transitions

[export]
# dir = %q
# share = true            # Copy exported card path to the clipboard

[service]
# url = %q

[log]
# verbose = false         # Debug logging to %s
`,
		deck.DefaultDragDistance,
		deck.DefaultDragVelocity,
		tui.DefaultCellWidth,
		counter.DefaultDuration.Seconds(),
		config.DefaultExportDir(),
		analysis.DefaultBaseURL,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DragDistance <= 0 {
		return fmt.Errorf("--drag-distance must be > 0")
	}
	if cfg.DragVelocity <= 0 {
		return fmt.Errorf("--drag-velocity must be > 0")
	}
	if cfg.CellWidth <= 0 {
		return fmt.Errorf("--cell-width must be > 0")
	}
	if cfg.CounterDuration <= 0 {
		return fmt.Errorf("--counter-duration must be > 0")
	}
	if strings.TrimSpace(cfg.ExportDir) == "" {
		return fmt.Errorf("--export-dir must not be empty")
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
