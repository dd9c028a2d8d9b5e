package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	errx "github.com/sme-marketplace/server/internal/core/error"
	"github.com/sme-marketplace/server/internal/marketplace/catalog"
	"github.com/sme-marketplace/server/internal/marketplace/compare"
	"github.com/sme-marketplace/server/internal/marketplace/mapper"
	"github.com/sme-marketplace/server/internal/marketplace/model"
	"github.com/sme-marketplace/server/internal/marketplace/registry"
	"github.com/sme-marketplace/server/internal/marketplace/repo"
	logx "github.com/sme-marketplace/server/pkg/logger"
	"gopkg.in/yaml.v3"
)

// app is the state shared by every command once the root pre-run has loaded
// configuration.
type app struct {
	envFile string
	cfg     AppConfig
	svc     *catalog.Service
	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Normalise, filter and compare SME marketplace listings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for _, c := range a.closers {
				_ = c.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		a.categoriesCmd(),
		a.configCmd(),
		a.normalizeCmd(),
		a.filtersCmd(),
		a.compareCmd(),
		a.bookmarkCmd(),
	)

	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := loadConfig(a.envFile)
	if err != nil {
		return fmt.Errorf("process environment config: %w", err)
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})

	reg, err := registry.New(registry.Options{Mapper: cfg.Mapper})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	svc, err := catalog.NewService(ctx, reg)
	if err != nil {
		return fmt.Errorf("build catalog pipelines: %w", err)
	}
	a.cfg = cfg
	a.svc = svc
	return nil
}

func (a *app) category(arg string) (model.Category, error) {
	c, ok := model.ParseCategory(arg)
	if !ok {
		return "", errx.UnknownCategory(arg)
	}
	return c, nil
}

// selectionRepo returns the Redis repository when REDIS_URL is set and an
// in-process one otherwise.
func (a *app) selectionRepo(ctx context.Context) (model.SelectionRepository, error) {
	if !a.cfg.Redis.Enabled() {
		logx.Warn().Str("component", "cli").Msg("REDIS_URL not set, selections are kept in memory for this run only")
		return repo.NewMemorySelectionRepository(), nil
	}
	rdb, err := a.cfg.Redis.New(ctx)
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	a.closers = append(a.closers, rdb)
	return repo.NewRedisSelectionRepository(rdb, a.cfg.Redis.TTL()), nil
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the marketplace categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := a.svc.Registry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range reg.Categories() {
				cfg, err := reg.Get(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d filters\n", c, cfg.Title, len(cfg.Filters))
			}
			return w.Flush()
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <category>",
		Short: "Print the declarative configuration of a category as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.category(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.svc.Registry().Get(c)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
}

func (a *app) normalizeCmd() *cobra.Command {
	var (
		detail  bool
		query   string
		selects []string
	)
	cmd := &cobra.Command{
		Use:   "normalize <category> [file]",
		Short: "Map raw upstream records to canonical items",
		Long: "Reads a JSON record or array of records from file (or stdin) and prints the canonical items.\n" +
			"List mode searches and filters the result; detail mode fills gaps from the category fallback item.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.category(args[0])
			if err != nil {
				return err
			}
			recs, err := readRecords(cmd, c, args[1:])
			if err != nil {
				return err
			}

			if detail {
				if len(recs) == 0 {
					recs = []model.RawRecord{nil}
				}
				items := make([]model.CanonicalItem, 0, len(recs))
				for _, rec := range recs {
					it, err := a.svc.Detail(cmd.Context(), c, rec)
					if err != nil {
						return err
					}
					items = append(items, it)
				}
				return writeJSON(cmd.OutOrStdout(), items)
			}

			items, err := a.svc.List(cmd.Context(), c, recs)
			if err != nil {
				return err
			}
			sel, err := parseSelection(selects)
			if err != nil {
				return err
			}
			cfg, err := a.svc.Registry().Get(c)
			if err != nil {
				return err
			}
			items = catalog.Filter(catalog.Search(items, query), sel, cfg.Filters)
			return writeJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&detail, "detail", false, "map records for the detail page and merge the fallback item")
	cmd.Flags().StringVarP(&query, "query", "q", "", "keep items matching every search term")
	cmd.Flags().StringArrayVarP(&selects, "select", "s", nil, "filter selection as filter=value[,value]")
	return cmd
}

func (a *app) filtersCmd() *cobra.Command {
	var (
		selects    []string
		facetsFile string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "filters <category>",
		Short: "Resolve the filter sidebar for a selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.category(args[0])
			if err != nil {
				return err
			}
			sel, err := parseSelection(selects)
			if err != nil {
				return err
			}
			var facets []mapper.Facet
			if facetsFile != "" {
				data, err := os.ReadFile(facetsFile)
				if err != nil {
					return errx.InvalidInput(err)
				}
				if err := json.Unmarshal(data, &facets); err != nil {
					return errx.InvalidInput(fmt.Errorf("decode facets: %w", err))
				}
			}
			if strict {
				r, err := a.svc.Registry().Resolver(c)
				if err != nil {
					return err
				}
				if err := r.Validate(sel); err != nil {
					return err
				}
			}

			fs, healed, err := a.svc.Filters(cmd.Context(), c, facets, sel)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				Selection model.Selection              `json:"selection"`
				Filters   []model.FilterCategoryConfig `json:"filters"`
			}{healed, fs})
		},
	}
	cmd.Flags().StringArrayVarP(&selects, "select", "s", nil, "filter selection as filter=value[,value]")
	cmd.Flags().StringVar(&facetsFile, "facets", "", "JSON file with upstream facets")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on a child value the parent selection does not allow")
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var (
		asJSON bool
		owner  string
	)
	cmd := &cobra.Command{
		Use:   "compare <category> [file]",
		Short: "Compare up to three records side by side",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.category(args[0])
			if err != nil {
				return err
			}
			recs, err := readRecords(cmd, c, args[1:])
			if err != nil {
				return err
			}
			items := make([]model.CanonicalItem, 0, len(recs))
			for _, rec := range recs {
				it, err := a.svc.Detail(cmd.Context(), c, rec)
				if err != nil {
					return err
				}
				items = append(items, it)
			}
			cfg, err := a.svc.Registry().Get(c)
			if err != nil {
				return err
			}
			table, err := compare.Build(cfg, items, nil)
			if err != nil {
				return err
			}

			if owner != "" {
				store, err := a.selectionRepo(cmd.Context())
				if err != nil {
					return err
				}
				ids := make([]string, len(items))
				for i, it := range items {
					ids[i] = it.ID
				}
				if err := store.SetComparison(cmd.Context(), owner, c, ids); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), table)
			}
			return writeTable(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	cmd.Flags().StringVar(&owner, "owner", "", "remember the compared ids for this visitor")
	return cmd
}

func (a *app) bookmarkCmd() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage a visitor's bookmarks",
	}
	cmd.PersistentFlags().StringVar(&owner, "owner", "", "visitor id")
	_ = cmd.MarkPersistentFlagRequired("owner")

	change := func(use, short string, apply func(model.SelectionRepository, context.Context, model.Category, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <category> <item-id>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.category(args[0])
				if err != nil {
					return err
				}
				store, err := a.selectionRepo(cmd.Context())
				if err != nil {
					return err
				}
				return apply(store, cmd.Context(), c, args[1])
			},
		}
	}
	add := change("add", "Bookmark an item", func(s model.SelectionRepository, ctx context.Context, c model.Category, id string) error {
		return s.AddBookmark(ctx, owner, c, id)
	})
	remove := change("remove", "Remove a bookmark", func(s model.SelectionRepository, ctx context.Context, c model.Category, id string) error {
		return s.RemoveBookmark(ctx, owner, c, id)
	})
	list := &cobra.Command{
		Use:   "list <category>",
		Short: "List bookmarked item ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.category(args[0])
			if err != nil {
				return err
			}
			store, err := a.selectionRepo(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := store.ListBookmarks(cmd.Context(), owner, c)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.AddCommand(add, remove, list)
	return cmd
}

// readRecords decodes records from the file named in args, or stdin.
func readRecords(cmd *cobra.Command, c model.Category, args []string) ([]model.RawRecord, error) {
	var (
		data []byte
		err  error
	)
	if len(args) > 0 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, errx.InvalidInput(err)
	}
	recs, err := model.DecodeRecords(c, data)
	if err != nil {
		return nil, errx.InvalidInput(err)
	}
	return recs, nil
}

// parseSelection turns repeated "filter=a,b" flags into a selection.
func parseSelection(flags []string) (model.Selection, error) {
	sel := model.Selection{}
	for _, f := range flags {
		id, values, ok := strings.Cut(f, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, errx.InvalidInput(fmt.Errorf("selection %q is not filter=value", f))
		}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				sel[id] = append(sel[id], v)
			}
		}
	}
	return sel, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, t compare.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{""}
	for _, c := range t.Columns {
		header = append(header, c.Title)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range t.Rows {
		cells := []string{row.Label}
		for _, c := range row.Cells {
			text := c.Text
			if c.Synthetic {
				text += "*"
			}
			cells = append(cells, text)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "* placeholder value")
	return err
}
