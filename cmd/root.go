package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"healthscore/internal/coach"
	"healthscore/internal/config"
	"healthscore/internal/logger"
	"healthscore/internal/service"
	"healthscore/internal/store"
)

var (
	configPath string
	userID     string
)

var rootCmd = &cobra.Command{
	Use:   "healthscore",
	Short: "Health questionnaire scoring with a terminal dashboard and HTTP API",
	Long: `healthscore turns lifestyle questionnaire answers into body metrics,
five pillar scores and an overall health score, and tracks them over time.

Without a subcommand it opens the terminal dashboard for the configured user.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.healthscore/config.json)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User ID (defaults to user.id from config)")

	rootCmd.AddCommand(tuiCmd, assessCmd, historyCmd, serveCmd)
}

// loadConfig reads the config file, creating an example on first run.
// Without a file the defaults plus environment overrides are used.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}

	if errors.Is(err, config.ErrNoConfig) {
		if configPath == "" {
			if err := config.CreateExample(); err != nil {
				return nil, fmt.Errorf("creating example config: %w", err)
			}
			dir, _ := config.GetConfigDir()
			fmt.Fprintf(os.Stderr, "Created an example config at %s\n", filepath.Join(dir, "config.json"))
		}
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if userID != "" {
		cfg.User.ID = userID
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// deps holds everything a command needs once config is loaded
type deps struct {
	cfg *config.Config
	log *logger.Logger
	db  *store.DB
	svc *service.AssessmentService
}

func (d *deps) Close() {
	d.db.Close()
	d.log.Sync()
}

// setup loads config, opens the log, database and coaching client.
// logFile overrides log.file when the terminal must stay clean.
func setup(logFile string) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		logFile = cfg.Log.File
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	log, err := logger.New(cfg.Log.Mode, logFile)
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var c service.Coach
	if cfg.Coach.Enabled() {
		client, err := coach.NewClient(coach.Config{
			BaseURL:           cfg.Coach.BaseURL,
			APIKey:            cfg.Coach.APIKey,
			Model:             cfg.Coach.Model,
			RequestsPerMinute: cfg.Coach.RequestsPerMinute,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating coach client: %w", err)
		}
		c = client
		log.Info("coaching enabled", "model", cfg.Coach.Model, "base_url", cfg.Coach.BaseURL)
	}

	return &deps{
		cfg: cfg,
		log: log,
		db:  db,
		svc: service.NewAssessmentService(db, c, log),
	}, nil
}
