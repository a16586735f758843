package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/fieldlab/crop-advisor/internal/report"
)

// render-plan-report turns a saved plan envelope (or raw markdown report)
// into a styled HTML or PDF document.
func main() {
	inputPath := flag.String("input", "", "path to saved plan envelope JSON or markdown report")
	htmlPath := flag.String("html-output", "", "optional path to write rendered HTML")
	pdfPath := flag.String("pdf-output", "", "optional path to write rendered PDF (needs headless Chromium)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	if *htmlPath == "" && *pdfPath == "" {
		log.Fatal("nothing to do: set -html-output and/or -pdf-output")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	if *htmlPath != "" {
		htmlDoc, err := report.RenderHTML(string(in))
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		if err := os.WriteFile(*htmlPath, []byte(htmlDoc), 0o644); err != nil {
			log.Fatalf("write html: %v", err)
		}
		log.Printf("wrote %s", *htmlPath)
	}

	if *pdfPath != "" {
		renderer := report.NewChromiumPDFRenderer()
		pdf, err := renderer.Render(context.Background(), string(in))
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
		log.Printf("wrote %s (%d bytes)", *pdfPath, len(pdf))
	}
}
