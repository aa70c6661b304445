// Command query runs one catalog or article query and prints the result as
// JSON on stdout.
//
//	query -name popular-videos -days 30
//	query -name products-page -page 2
//	query -name search-shopping -term fish
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"blogful/internal/config"
	"blogful/internal/domain/entity"
	pgRepo "blogful/internal/infra/adapter/persistence/postgres"
	"blogful/internal/infra/db"
	"blogful/internal/observability/logging"
	artUC "blogful/internal/usecase/article"
	catUC "blogful/internal/usecase/catalog"
)

// options are the parsed command line flags.
type options struct {
	name string
	term string
	page int
	days int
}

// queryFunc runs one query and returns a JSON-encodable result.
type queryFunc func(ctx context.Context, cat *catUC.Service, art artUC.Service, o options) (any, error)

var queries = map[string]queryFunc{
	"list-articles": func(ctx context.Context, _ *catUC.Service, art artUC.Service, _ options) (any, error) {
		return art.GetAll(ctx)
	},
	"search-products": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.SearchProducts(ctx, o.term)
	},
	"find-product": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		p, err := cat.FindProductByName(ctx, o.term)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, entity.ErrNotFound
		}
		return p, nil
	},
	"products-page": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.ListProductsPage(ctx, o.page)
	},
	"products-with-images": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, _ options) (any, error) {
		return cat.ListProductsWithImages(ctx)
	},
	"search-shopping": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.SearchShoppingItems(ctx, o.term)
	},
	"shopping-page": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.ListShoppingItemsPage(ctx, o.page)
	},
	"recent-items": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.ShoppingItemsAddedAfter(ctx, o.days)
	},
	"category-totals": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, _ options) (any, error) {
		return cat.TotalCostPerCategory(ctx)
	},
	"popular-videos": func(ctx context.Context, cat *catUC.Service, _ artUC.Service, o options) (any, error) {
		return cat.MostPopularVideos(ctx, o.days)
	},
}

func queryNames() []string {
	names := make([]string, 0, len(queries))
	for n := range queries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.name, "name", "", "query to run: "+strings.Join(queryNames(), ", "))
	fs.StringVar(&o.term, "term", "", "search term or exact product name")
	fs.IntVar(&o.page, "page", 1, "1-based page for paged queries")
	fs.IntVar(&o.days, "days", 7, "day window for recent-items and popular-videos")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if _, ok := queries[o.name]; !ok {
		return options{}, fmt.Errorf("unknown query %q (want one of %s)", o.name, strings.Join(queryNames(), ", "))
	}
	return o, nil
}

// execute runs the query named in o and writes indented JSON to out.
func execute(ctx context.Context, o options, cat *catUC.Service, art artUC.Service, out io.Writer) error {
	result, err := queries[o.name](ctx, cat, art, o)
	if err != nil {
		return fmt.Errorf("%s: %w", o.name, err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.Error("invalid arguments", slog.Any("error", err))
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}
	cfg, err := config.LoadApp()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DBDriver != config.DriverPostgres {
		logger.Error("the query CLI needs DB_DRIVER=postgres", slog.String("db_driver", cfg.DBDriver))
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL, db.ConnectionConfigFromEnv(logger), logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	cat := &catUC.Service{
		Products: pgRepo.NewProductRepo(database),
		Shopping: pgRepo.NewShoppingListRepo(database),
		Videos:   pgRepo.NewVideoViewRepo(database),
	}
	art := artUC.Service{Repo: pgRepo.NewArticleRepo(database)}

	if err := execute(ctx, o, cat, art, os.Stdout); err != nil {
		logger.Error("query failed", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
}
