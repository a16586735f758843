package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/fieldlab/crop-advisor/internal/classify"
	"github.com/fieldlab/crop-advisor/internal/httpapi"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

func main() {
	catalogDir := flag.String("catalog-dir", "", "directory with catalog JSON files (overrides embedded catalog)")
	catalogDB := flag.String("catalog-db", "", "path to compiled SQLite catalog (overrides -catalog-dir)")
	flag.Parse()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	catalog, source, err := loadCatalog(*catalogDB, *catalogDir)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	diseases, details, treatments := catalog.Sizes()
	log.Printf("catalog loaded from %s: %d diseases, %d pest details, %d treatment profiles",
		source, diseases, details, treatments)

	var classifier classify.Classifier
	if url := os.Getenv("CLASSIFIER_URL"); url != "" {
		classifier = classify.NewHTTPClassifier(url, classify.DefaultTopK)
		log.Printf("using classifier service at %s", url)
	} else {
		log.Printf("no CLASSIFIER_URL set; /v1/predict disabled")
	}

	h := httpapi.NewServer(catalog, classifier)
	log.Printf("advisor-server listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal(err)
	}
}

func loadCatalog(dbPath, dir string) (*refdata.Catalog, string, error) {
	switch {
	case dbPath != "":
		c, err := refdata.LoadSQLite(dbPath)
		return c, dbPath, err
	case dir != "":
		c, err := refdata.Load(dir)
		return c, dir, err
	default:
		c, err := refdata.Default()
		return c, "embedded data", err
	}
}
