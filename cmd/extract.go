package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/config"
	"github.com/agentic-research/playmap/internal/extract"
	"github.com/agentic-research/playmap/internal/mappings"
	"github.com/agentic-research/playmap/internal/play"
	"github.com/agentic-research/playmap/internal/scriptdata"
	"github.com/agentic-research/playmap/internal/store"
	"github.com/spf13/cobra"
)

var (
	extractEntity   string
	extractPath     string
	extractStored   string
	extractNotMerge bool
)

// offline refuses every fetch; extract never touches the network.
type offline struct{}

func (offline) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("network access disabled in extract")
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Re-run extraction over a saved page without fetching",
	Long: `Re-run extraction over a saved page without fetching.

The page comes from an HTML or JSON document file, from the store (--stored URL
picks the latest copy of one page; with neither, every stored page of the
entity's kind is extracted). --entity is app or list, or any mapping entity
together with --path naming the array of items to resolve, e.g.

  playmap extract page.html --entity cluster_item --path "$['ds:3'][0][1][0][21][0]"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkEntity(); err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := play.New(offline{}, play.Options{Workers: cfg.Workers, Logger: slog.Default()})
		if err != nil {
			return err
		}
		run := func(doc *scriptdata.Document) (any, error) {
			return runExtraction(client, doc)
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		switch {
		case len(args) == 1:
			doc, err := loadDocument(ctx, client, args[0])
			if err != nil {
				return err
			}
			v, err := run(doc)
			if err != nil {
				return err
			}
			return printJSON(out, v)

		case extractStored != "":
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			stored, err := db.LatestDocument(ctx, extractStored)
			if err != nil {
				return err
			}
			v, err := run(stored.Doc)
			if err != nil {
				return err
			}
			return printJSON(out, withContext(v, stored.URL))

		default:
			db, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			results := []storedResult{}
			err = db.StreamDocuments(ctx, func(d store.Document) error {
				if !matchesEntity(d.URL) {
					return nil
				}
				r := storedResult{URL: d.URL, FetchedAt: d.FetchedAt.UTC().Format("2006-01-02T15:04:05Z")}
				v, err := run(d.Doc)
				if err != nil {
					slog.Warn("extraction failed", "url", d.URL, "err", err)
					r.Error = err.Error()
				} else {
					r.Result = withContext(v, d.URL)
				}
				results = append(results, r)
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(out, results)
		}
	},
}

type storedResult struct {
	URL       string `json:"url"`
	FetchedAt string `json:"fetchedAt"`
	Result    any    `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractEntity, "entity", "e", mappings.EntityApp, "app, list, or a mapping entity used with --path")
	f.StringVar(&extractPath, "path", "", "JSONPath of the item array for a mapping entity")
	f.StringVar(&extractStored, "stored", "", "Extract the latest stored copy of this URL")
	f.BoolVar(&extractNotMerge, "not-merge", false, "For list, print collection groups")
	rootCmd.AddCommand(extractCmd)
}

func openStore(cfg *config.Config) (*store.DB, error) {
	if cfg.DB == "" {
		return nil, errors.New("no database configured: pass --db or set db in the config")
	}
	return store.Open(cfg.DB)
}

// checkEntity rejects an entity that cannot be extracted with the given
// flags, before any document is read.
func checkEntity() error {
	if extractPath != "" || extractEntity == mappings.EntityApp || extractEntity == "list" {
		return nil
	}
	return fmt.Errorf("entity %s needs --path", extractEntity)
}

func runExtraction(client *play.Client, doc *scriptdata.Document) (any, error) {
	if extractPath != "" {
		root, err := api.ParsePath(extractPath)
		if err != nil {
			return nil, err
		}
		versions, err := mappings.Default().Versions(extractEntity)
		if err != nil {
			return nil, err
		}
		asm := &extract.Assembler{Items: versions, Logger: slog.Default()}
		return asm.ExtractList(doc, root)
	}
	switch extractEntity {
	case mappings.EntityApp:
		return client.ExtractApp(doc)
	case "list":
		res, err := client.ExtractList(doc, extractNotMerge)
		if err != nil {
			return nil, err
		}
		return res.Value(), nil
	}
	return nil, checkEntity()
}

// matchesEntity reports whether a stored page URL is of the kind the
// selected entity is extracted from.
func matchesEntity(u string) bool {
	switch {
	case extractPath != "":
		return true
	case extractEntity == mappings.EntityApp:
		return strings.Contains(u, "/store/apps/details")
	case extractEntity == "list":
		return strings.Contains(u, "/store/apps/category/")
	}
	return false
}

// withContext merges appId and url into app records, as the online
// command does.
func withContext(v any, pageURL string) any {
	rec, ok := v.(api.Record)
	if !ok || extractEntity != mappings.EntityApp {
		return v
	}
	if parsed, err := url.Parse(pageURL); err == nil {
		if id := parsed.Query().Get("id"); id != "" {
			rec = rec.With("appId", id)
		}
	}
	return rec.With("url", pageURL)
}
