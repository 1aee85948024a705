package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/agentic-research/playmap/internal/config"
	"github.com/agentic-research/playmap/internal/fetch"
	"github.com/agentic-research/playmap/internal/play"
	"github.com/agentic-research/playmap/internal/scriptdata"
	"github.com/agentic-research/playmap/internal/store"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

var (
	configPath  string
	verbose     bool
	langFlag    string
	countryFlag string
	dbFlag      string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	pf.StringVar(&langFlag, "lang", "", "Two letter language code (default from config, then en)")
	pf.StringVar(&countryFlag, "country", "", "Two letter country code (default from config, then us)")
	pf.StringVar(&dbFlag, "db", "", "SQLite file to save fetched documents and records to")
}

var rootCmd = &cobra.Command{
	Use:           "playmap",
	Short:         "Extract stable records from store pages with versioned path mappings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves file, environment and flag settings, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = langFlag
	}
	if flags.Changed("country") {
		cfg.Country = countryFlag
	}
	if flags.Changed("db") {
		cfg.DB = dbFlag
	}
	return cfg, nil
}

// session bundles what every online command needs.
type session struct {
	cfg    *config.Config
	client *play.Client
	db     *store.DB
}

func (s *session) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}
	opts := play.Options{
		CacheSize: cfg.CacheSize,
		Workers:   cfg.Workers,
		Logger:    slog.Default(),
	}
	if cfg.DB != "" {
		if s.db, err = store.Open(cfg.DB); err != nil {
			return nil, err
		}
		opts.Sink = s.db
	}
	fetcher := fetch.New(fetch.Options{
		Throttle:  cfg.Throttle,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		UserAgent: cfg.UserAgent,
		Logger:    slog.Default(),
	})
	if s.client, err = play.New(fetcher, opts); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// saveRecord stores v when a database is configured.
func (s *session) saveRecord(ctx context.Context, entity, key string, v any) error {
	if s.db == nil {
		return nil
	}
	return s.db.SaveRecord(ctx, entity, key, v)
}

// loadDocument reads a page from a URL, an HTML file or a JSON document
// file written by the store.
func loadDocument(ctx context.Context, client *play.Client, src string) (*scriptdata.Document, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return client.Document(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(src)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return scriptdata.ParseString(string(data))
	}
	return scriptdata.Decode(string(data))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
