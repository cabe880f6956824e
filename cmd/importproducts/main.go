// Command importproducts loads a supplier price list (.xlsx) into the product catalog.
// Usage: go run ./cmd/importproducts -file prices.xlsx [-sheet Sheet1] [-supplier <uuid>] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/logger"
	"backoffice/internal/productimport"
	"backoffice/internal/repository/postgres"
	"backoffice/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.String("file", "", "path to the .xlsx price list")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	supplier := flag.String("supplier", "", "supplier id to link the products to")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	var supplierID *uuid.UUID
	if *supplier != "" {
		id, err := uuid.Parse(*supplier)
		if err != nil {
			return fmt.Errorf("invalid -supplier: %w", err)
		}
		supplierID = &id
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logg := logger.New(cfg.Log)
	defer func() { _ = logg.Sync() }()

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open price list: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := productimport.Read(f, *sheet, supplierID)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		logg.Warn("row skipped", zap.Int("row", skipped.Row), zap.String("reason", skipped.Reason))
	}
	logg.Info("price list parsed", zap.Int("products", len(res.Products)), zap.Int("skipped", len(res.Skipped)))
	if *dryRun || len(res.Products) == 0 {
		return nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	products := service.NewProductService(postgres.NewProductRepo(db), nil, logg.Named("import"))
	inserted, err := products.Import(context.Background(), res.Products)
	if err != nil {
		return fmt.Errorf("import products: %w", err)
	}
	logg.Info("import finished",
		zap.Int("inserted", inserted),
		zap.Int("existing_ean", len(res.Products)-inserted),
	)
	return nil
}
