// Command wooctl is an operator tool for one-off store and cursor tasks.
//
//	wooctl [-config path] products [-summary]
//	wooctl [-config path] product <id>
//	wooctl [-config path] order <id>
//	wooctl [-config path] set-price [-sale price] <id> <price>
//	wooctl [-config path] set-stock <id> <quantity>
//	wooctl [-config path] cursor get
//	wooctl [-config path] cursor set <timestamp>
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
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/woo-sync/internal/app"
	"github.com/rickgao/woo-sync/internal/config"
	"github.com/rickgao/woo-sync/internal/cursor"
	"github.com/rickgao/woo-sync/internal/woo"
)

var errUsage = errors.New("usage: wooctl [-config path] <products|product|order|set-price|set-stock|cursor> [args]")

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall command timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *configPath, flag.Args(), os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, args []string, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return err
	}

	if args[0] == "cursor" {
		return runCursor(ctx, cfg, args[1:], out, logger)
	}

	client, err := app.Client(cfg, logger)
	if err != nil {
		return err
	}
	return runStore(ctx, client, args, out)
}

// runStore handles the commands that talk to the store.
func runStore(ctx context.Context, client *woo.Client, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "products":
		fs := flag.NewFlagSet("products", flag.ContinueOnError)
		summary := fs.Bool("summary", false, "print id, stock and price only")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *summary {
			summaries, err := client.ListProductSummaries(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, summaries)
		}
		products, err := client.ListProducts(ctx)
		if err != nil {
			return err
		}
		raw := make([]json.RawMessage, len(products))
		for i, p := range products {
			raw[i] = p.Raw
		}
		return printJSON(out, raw)

	case "product":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		p, err := client.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, p.Raw)

	case "order":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		order, err := client.GetNormalizedOrder(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(out, order)

	case "set-price":
		fs := flag.NewFlagSet("set-price", flag.ContinueOnError)
		saleFlag := fs.String("sale", "", "sale price")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 2 {
			return errors.New("usage: wooctl set-price [-sale price] <id> <price>")
		}
		id, err := parseID(fs.Args()[:1])
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", fs.Arg(1), err)
		}
		var sale *decimal.Decimal
		if *saleFlag != "" {
			s, err := decimal.NewFromString(*saleFlag)
			if err != nil {
				return fmt.Errorf("invalid sale price %q: %w", *saleFlag, err)
			}
			sale = &s
		}
		p, err := client.UpdatePrice(ctx, id, price, sale)
		if err != nil {
			return err
		}
		return printJSON(out, p.Raw)

	case "set-stock":
		if len(rest) != 2 {
			return errors.New("usage: wooctl set-stock <id> <quantity>")
		}
		id, err := parseID(rest[:1])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", rest[1], err)
		}
		p, err := client.UpdateStock(ctx, id, qty)
		if err != nil {
			return err
		}
		return printJSON(out, p.Raw)
	}

	return errUsage
}

func runCursor(ctx context.Context, cfg *config.SyncConfig, args []string, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errors.New("usage: wooctl cursor <get|set> [timestamp]")
	}

	res, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	store, err := app.CursorStore(ctx, cfg, res)
	if err != nil {
		return err
	}

	switch args[0] {
	case "get":
		v, err := store.Get(ctx, cursor.KeyLastOrderTime)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil

	case "set":
		if len(args) != 2 {
			return errors.New("usage: wooctl cursor set <timestamp>")
		}
		if _, err := cursor.ParseTimestamp(args[1]); err != nil {
			return err
		}
		return store.Set(ctx, cursor.KeyLastOrderTime, args[1])
	}

	return errors.New("usage: wooctl cursor <get|set> [timestamp]")
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
