package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/reelkeeper/api"
	"github.com/s0up4200/reelkeeper/catalog"
	"github.com/s0up4200/reelkeeper/config"
	"github.com/s0up4200/reelkeeper/filter"
	"github.com/s0up4200/reelkeeper/library"
	"github.com/s0up4200/reelkeeper/media"
	"github.com/s0up4200/reelkeeper/session"
)

// skipInit marks commands that run without config or a session
const skipInit = "skip-init"

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile     string
	baseURL     string
	dryRun      bool
	logLevel    string
	showPosters bool

	cfg       *config.Config
	logger    zerolog.Logger
	sess      *session.Session
	manager   *session.Manager
	lib       *library.Library
	movies    *catalog.Client
	compiler  *filter.Compiler
	formatter *ConsoleFormatter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reelkeeper",
	Short: "Discover movies and manage your favorites, watchlist and ratings",
	Long: `reelkeeper is a CLI client for a movie discovery service. Browse popular,
top rated, now playing and upcoming movies, search the catalog, and keep
favorites, a watchlist and ratings in your account.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// SetVersion records build information injected through ldflags
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the backend API base URL")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&showPosters, "posters", false, "show poster URLs")
}

// initializeApp loads configuration, wires the clients and restores the
// persisted session
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInit] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = baseURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())

	store, err := session.NewFileStore(cfg.Session.TokenFile)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	sess = session.New()
	client, err := api.NewClient(cfg.API.BaseURL, logger,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(fmt.Sprintf("%s/%s", cfg.API.UserAgent, version)),
		api.WithTokenSource(sess.Token),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	manager = session.NewManager(client, store, sess, logger)
	lib = library.New(client, sess, logger)
	movies = catalog.NewClient(client, logger)
	compiler = filter.NewCompiler(filter.WithCache(64))

	posterSize, err := media.ParseSize(cfg.Media.PosterSize)
	if err != nil {
		return err
	}
	formatter = NewConsoleFormatter(media.NewResolver(cfg.Media.BaseURL), posterSize, showPosters)

	manager.Bootstrap(cmd.Context())
	logger.Debug().Str("state", sess.State().String()).Msg("Session restored")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// requireLogin fails commands that need an authenticated session
func requireLogin(action string) error {
	if !sess.IsAuthenticated() {
		return &library.LoginRequiredError{Action: action}
	}
	return nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression(expression, preset string) (*filter.Filter, error) {
	resolved, err := filter.Resolve(expression, preset, cfg.Filter.Presets)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return nil, nil
	}

	logger.Debug().Str("filter", resolved).Msg("Applying filter")
	f, err := compiler.Compile(resolved)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

func printOut(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s)
}

func printMessage(cmd *cobra.Command, message, fallback string) {
	if message == "" {
		message = fallback
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
}
