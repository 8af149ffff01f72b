package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glabrego/pulse-cli/internal/app"
	"github.com/glabrego/pulse-cli/internal/config"
	"github.com/glabrego/pulse-cli/internal/logging"
	"github.com/glabrego/pulse-cli/internal/nav"
	"github.com/glabrego/pulse-cli/internal/social"
	"github.com/glabrego/pulse-cli/internal/storage"
	"github.com/glabrego/pulse-cli/internal/tui"
	tuiview "github.com/glabrego/pulse-cli/internal/tui/view"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is everything a command needs, built once per invocation.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	repo    *storage.Repository
	service *app.Service
	http    *http.Client
}

func (e *env) Close() {
	if e.repo != nil {
		_ = e.repo.Close()
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "pulse",
		Short: "Terminal client for the Pulse social app",
		Long: `pulse browses posts, reels and stories of a Pulse backend from the terminal.

Run without arguments to start the interactive interface. Settings come from
the file given with --config (or PULSE_CONFIG) and PULSE_* environment variables.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			defer e.Close()
			return runTUI(cmd.Context(), e)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("PULSE_CONFIG"), "path to a YAML config file")

	root.AddCommand(newWhoamiCmd(&configPath), newFeedCmd(&configPath))
	return root
}

func setup(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logging error: %w", err)
	}

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	e := &env{cfg: cfg, logger: logger, repo: repo}

	initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		e.Close()
		return nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		e.Close()
		return nil, fmt.Errorf("storage write check failed (%v). Verify PULSE_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	e.http = &http.Client{Timeout: cfg.RequestTimeout}
	client := social.NewClient(cfg.APIBaseURL, e.http)
	e.service = app.NewService(client, repo, cfg.PerPage, logger)
	logger.Debug("startup complete",
		zap.String("api", cfg.APIBaseURL),
		zap.String("db", cfg.DBPath),
		zap.Int("per_page", cfg.PerPage))
	return e, nil
}

// signIn logs in with configured credentials. Without credentials the session
// check decides whether a login is needed.
func (e *env) signIn(ctx context.Context) error {
	if e.cfg.Username == "" || e.cfg.Password == "" {
		return nil
	}
	loginCtx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()
	return e.service.Login(loginCtx, e.cfg.Username, e.cfg.Password)
}

func runTUI(ctx context.Context, e *env) error {
	if err := e.signIn(ctx); err != nil {
		e.logger.Warn("configured login failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "warning: configured login failed (%v), sign in from the app\n", err)
	}

	policy, err := nav.ParsePolicy(e.cfg.StoryPolicy)
	if err != nil {
		return err
	}

	cacheCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	cached, err := e.service.ListCached(cacheCtx, social.KindPosts, app.DefaultCacheLimit)
	cancel()
	if err != nil {
		e.logger.Warn("cannot load cached posts", zap.Error(err))
	}

	prefCtx, prefCancel := context.WithTimeout(ctx, 5*time.Second)
	prefs, err := e.service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load UI preferences (%v), using defaults\n", err)
	}
	dark := prefs.DarkTheme

	previewer := tuiview.NewMediaPreviewer(e.http)
	model := tui.NewModel(e.service, tui.Options{
		Nav: nav.Options{
			ScrollThreshold:  e.cfg.ScrollThreshold,
			SwipeThreshold:   e.cfg.SwipeThreshold,
			DismissThreshold: e.cfg.DismissThreshold,
			StoryPolicy:      policy,
		},
		Timeout: e.cfg.RequestTimeout,
		Dark:    dark,
		Cached:  cached,
		Preview: previewer.Render,
		SavePreferences: func(dark bool) error {
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer saveCancel()
			return e.service.SaveUIPreferences(saveCtx, app.UIPreferences{DarkTheme: dark})
		},
		Logger: e.logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
