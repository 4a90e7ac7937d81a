// Package main provides a tool to seed the catalog with demo data.
//
// It creates a demo directory tree, registers it as a base path, builds a
// small tag taxonomy, indexes a handful of media files, and runs an
// intersection query over the result.
//
// Usage:
//
//	MEDIASTASH_DB_PATH=/tmp/mediastash.db go run ./cmd/seed --root /tmp/mediastash-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/mediastash/mediastash-server/internal/di"
	"github.com/mediastash/mediastash-server/internal/domain"
	"github.com/mediastash/mediastash-server/internal/service"
)

var root = flag.String("root", "", "Directory to register as the demo base path (created if missing)")

func main() {
	flag.Parse()

	dir := *root
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "mediastash-demo")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	injector := di.NewContainer()
	defer func() {
		if err := injector.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	basePaths := do.MustInvoke[*service.BasePathService](injector)
	categories := do.MustInvoke[*service.CategoryService](injector)
	tags := do.MustInvoke[*service.TagService](injector)
	media := do.MustInvoke[*service.MediaService](injector)

	ctx := context.Background()

	bp, err := basePaths.Create(ctx, dir, "demo library")
	if err != nil {
		log.Fatalf("Failed to register base path: %v", err)
	}
	fmt.Printf("Registered base path %d: %s\n", bp.ID, bp.Path)

	subject, err := categories.Create(ctx, "Subject", "1f77b4", "what the media shows")
	if err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}
	place, err := categories.Create(ctx, "Place", "2ca02c", "where it was taken")
	if err != nil {
		log.Fatalf("Failed to create category: %v", err)
	}

	sunset, err := tags.Create(ctx, service.CreateTag{Name: "sunset", CategoryID: subject.ID})
	if err != nil {
		log.Fatalf("Failed to create tag: %v", err)
	}
	beach, err := tags.Create(ctx, service.CreateTag{Name: "beach", CategoryID: place.ID})
	if err != nil {
		log.Fatalf("Failed to create tag: %v", err)
	}

	width, height := 1920, 1080
	files := []service.CreateMedia{
		{RelativePath: "2024/beach-sunset.jpg", BasePathID: bp.ID, Width: &width, Height: &height, Size: 2048, MediaType: domain.MediaTypeImage},
		{RelativePath: "2024/beach-day.jpg", BasePathID: bp.ID, Width: &width, Height: &height, Size: 1580, MediaType: domain.MediaTypeImage},
		{RelativePath: "2024/sunset-walk.mp4", BasePathID: bp.ID, Size: 845312, MediaType: domain.MediaTypeVideo},
	}

	var ids []int64
	for _, f := range files {
		m, err := media.Create(ctx, f)
		if err != nil {
			log.Fatalf("Failed to index %s: %v", f.RelativePath, err)
		}
		ids = append(ids, m.ID)
		fmt.Printf("Indexed media %d: %s\n", m.ID, m.RelativePath)
	}

	// beach-sunset carries both tags, the others one each.
	for _, pair := range []struct{ mediaID, tagID int64 }{
		{ids[0], sunset.ID},
		{ids[0], beach.ID},
		{ids[1], beach.ID},
		{ids[2], sunset.ID},
	} {
		if err := media.TagMedia(ctx, pair.mediaID, pair.tagID); err != nil {
			log.Fatalf("Failed to tag media %d: %v", pair.mediaID, err)
		}
	}

	both, err := media.ListMediaByTags(ctx, []int64{sunset.ID, beach.ID})
	if err != nil {
		log.Fatalf("Failed to query by tags: %v", err)
	}

	fmt.Printf("Media tagged with both %q and %q:\n", sunset.Name, beach.Name)
	for _, m := range both {
		fmt.Printf("  %d %s\n", m.ID, m.RelativePath)
	}
}
