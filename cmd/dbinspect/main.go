// Package main provides a read-only summary of a catalog database.
//
// Usage:
//
//	MEDIASTASH_DB_PATH=~/.mediastash/main.db go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/mediastash/mediastash-server/internal/config"
	"github.com/mediastash/mediastash-server/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Opening database at: %s\n", cfg.Database.Path)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := sqlite.Open(cfg.Database.Path, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("=== Catalog Inspection ===")
	fmt.Println()

	basePaths, err := s.ListBasePaths(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to list base paths: %v", err)
	}

	totalMedia := 0
	for _, bp := range basePaths {
		files, err := s.ListMediaByBasePath(ctx, bp.ID)
		if err != nil {
			log.Fatalf("Failed to list media for base path %d: %v", bp.ID, err)
		}
		totalMedia += len(files)

		fmt.Printf("Base path: %s\n", bp.Path)
		fmt.Printf("  ID: %d\n", bp.ID)
		fmt.Printf("  Media files: %d\n", len(files))

		byType := map[string]int{}
		for _, m := range files {
			byType[m.MediaType.String()]++
		}
		for mt, n := range byType {
			fmt.Printf("    %s: %d\n", mt, n)
		}
	}

	categories, err := s.ListCategories(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}

	fmt.Println()
	for _, c := range categories {
		tags, err := s.ListTags(ctx, &c.ID)
		if err != nil {
			log.Fatalf("Failed to list tags for category %d: %v", c.ID, err)
		}
		fmt.Printf("Category: %s (#%s): %d tags\n", c.Name, c.Color, len(tags))
		for _, t := range tags {
			fmt.Printf("  %s\n", t.Name)
		}
	}

	fmt.Println()
	fmt.Printf("Totals: %d base paths, %d media files, %d categories\n",
		len(basePaths), totalMedia, len(categories))
}
