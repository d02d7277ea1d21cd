// Command extract runs the feature-extraction engine over an imagery
// cube: load cube and feature-set JSON, compute the feature table, and
// write it out as CSV, optionally persisting the run to a feature
// store and emitting per-column heatmaps and an HTML summary report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/verdant-data/canopy.report/internal/features"
	"github.com/verdant-data/canopy.report/internal/featurestore"
	"github.com/verdant-data/canopy.report/internal/heatmap"
	"github.com/verdant-data/canopy.report/internal/imagery"
	"github.com/verdant-data/canopy.report/internal/report"
	"github.com/verdant-data/canopy.report/internal/version"
)

var (
	cubePath     = flag.String("cube", "", "Path to imagery cube JSON (required)")
	featuresPath = flag.String("features", "", "Path to feature set JSON (default: built-in set)")
	outPath      = flag.String("out", "-", "CSV output path, or - for stdout")
	dbPath       = flag.String("db", "", "Optional sqlite feature store to persist the run into")
	plotDir      = flag.String("plots", "", "Optional directory for per-column heatmap PNGs")
	reportPath   = flag.String("report", "", "Optional path for an HTML summary report")
)

func main() {
	flag.Parse()
	log.Printf("[extract] canopy.report %s", version.String())

	if *cubePath == "" {
		flag.Usage()
		log.Fatal("[extract] -cube is required")
	}

	cubeFile, err := os.Open(*cubePath)
	if err != nil {
		log.Fatalf("[extract] open cube: %v", err)
	}
	cube, err := imagery.ReadCube(cubeFile)
	cubeFile.Close()
	if err != nil {
		log.Fatalf("[extract] %v", err)
	}
	log.Printf("[extract] Loaded cube: %dx%d pixels, %d steps, %d bands",
		cube.Width, cube.Height, cube.Steps, cube.Bands)

	var set *features.FeatureSet
	if *featuresPath != "" {
		f, err := os.Open(*featuresPath)
		if err != nil {
			log.Fatalf("[extract] open feature set: %v", err)
		}
		set, err = features.LoadFeatureSet(f)
		f.Close()
		if err != nil {
			log.Fatalf("[extract] %v", err)
		}
	}

	svc, err := features.NewService(cube, set)
	if err != nil {
		log.Fatalf("[extract] %v", err)
	}
	table, err := svc.Extract()
	if err != nil {
		log.Fatalf("[extract] extraction failed: %v", err)
	}

	if err := writeCSV(table, *outPath); err != nil {
		log.Fatalf("[extract] %v", err)
	}

	if *dbPath != "" {
		store, err := featurestore.Open(*dbPath)
		if err != nil {
			log.Fatalf("[extract] open feature store: %v", err)
		}
		runID, err := store.SaveRun(svc.FeatureSet(), cube.Pixels(), cube.Steps, cube.Bands, table)
		if err != nil {
			log.Fatalf("[extract] persist run: %v", err)
		}
		store.Close()
		log.Printf("[extract] Persisted run %s to %s", runID, *dbPath)
	}

	if *plotDir != "" {
		for _, col := range table.Columns() {
			path := filepath.Join(*plotDir, safeFileName(col.Name)+".png")
			if err := heatmap.SaveColumnPNG(col.Values, cube.Width, cube.Height, col.Name, path); err != nil {
				log.Fatalf("[extract] plot %s: %v", col.Name, err)
			}
		}
		log.Printf("[extract] Wrote %d heatmaps to %s", table.NumColumns(), *plotDir)
	}

	if *reportPath != "" {
		if err := report.WriteFile(*reportPath, "Feature extraction summary", table); err != nil {
			log.Fatalf("[extract] report: %v", err)
		}
		log.Printf("[extract] Wrote report to %s", *reportPath)
	}
}

func writeCSV(table *features.Table, path string) error {
	if path == "-" {
		return table.WriteCSV(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := table.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeFileName keeps column names usable as file names.
func safeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
