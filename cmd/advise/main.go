package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
	"github.com/fieldlab/crop-advisor/internal/remedy"
)

func main() {
	inputPath := flag.String("input", "", "path to predictions JSON (defaults to stdin)")
	catalogDir := flag.String("catalog-dir", "", "directory with catalog JSON files (overrides embedded catalog)")
	catalogDB := flag.String("catalog-db", "", "path to compiled SQLite catalog (overrides -catalog-dir)")
	season := flag.String("season", "", "current season: spring, summer, fall, or winter")
	format := flag.String("format", "json", "output format: json or markdown")
	flag.Parse()

	catalog, err := loadCatalog(*catalogDB, *catalogDir)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	predictions, err := readPredictions(*inputPath)
	if err != nil {
		log.Fatalf("read predictions: %v", err)
	}

	advisor := remedy.NewAdvisor(catalog)
	envelope, err := advisor.Assess(predictions, pestinfer.Season(*season))
	if err != nil {
		log.Fatalf("assess: %v", err)
	}

	switch *format {
	case "markdown":
		fmt.Print(envelope.ReportMarkdown)
	case "json":
		blob, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			log.Fatalf("encode envelope: %v", err)
		}
		fmt.Println(string(blob))
	default:
		log.Fatalf("unknown -format %q (want json or markdown)", *format)
	}
}

// readPredictions accepts either a bare array of predictions or an object
// with a "predictions" field, so saved API request bodies work unchanged.
func readPredictions(path string) ([]pestinfer.DiseasePrediction, error) {
	var blob []byte
	var err error
	if path == "" {
		blob, err = io.ReadAll(os.Stdin)
	} else {
		blob, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var predictions []pestinfer.DiseasePrediction
	if err := json.Unmarshal(blob, &predictions); err == nil {
		return predictions, nil
	}
	var wrapped struct {
		Predictions []pestinfer.DiseasePrediction `json:"predictions"`
	}
	if err := json.Unmarshal(blob, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Predictions, nil
}

func loadCatalog(dbPath, dir string) (*refdata.Catalog, error) {
	switch {
	case dbPath != "":
		return refdata.LoadSQLite(dbPath)
	case dir != "":
		return refdata.Load(dir)
	default:
		return refdata.Default()
	}
}
