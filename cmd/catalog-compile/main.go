package main

import (
	"flag"
	"log"

	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// catalog-compile turns the JSON reference tables into a single SQLite file
// that advisor-server can load with -catalog-db.
func main() {
	inputDir := flag.String("input", "", "directory with catalog JSON files (defaults to the embedded catalog)")
	outputPath := flag.String("output", "", "path to write the SQLite catalog")
	flag.Parse()

	if *outputPath == "" {
		log.Fatal("missing required -output")
	}

	var catalog *refdata.Catalog
	var err error
	if *inputDir == "" {
		catalog, err = refdata.Default()
	} else {
		catalog, err = refdata.Load(*inputDir)
	}
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	if err := refdata.WriteSQLite(*outputPath, catalog); err != nil {
		log.Fatalf("write sqlite catalog: %v", err)
	}

	diseases, details, treatments := catalog.Sizes()
	log.Printf("wrote %s: %d diseases, %d pest details, %d treatment profiles",
		*outputPath, diseases, details, treatments)
}
