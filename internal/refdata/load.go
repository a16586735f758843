package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names expected inside a catalog directory.
const (
	PestsFile       = "pests.json"
	PestDetailsFile = "pest_details.json"
	TreatmentsFile  = "treatments.json"
)

//go:embed data/pests.json data/pest_details.json data/treatments.json
var defaultData embed.FS

// Load reads the three catalog files from dir. A missing or corrupt file is
// a hard error: the engine cannot run with partial reference data.
func Load(dir string) (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		blob, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read catalog file %s: %w", name, err)
		}
		return blob, nil
	}
	return loadFrom(read)
}

// Default returns the catalog embedded in the binary: the cotton disease
// dataset the service ships with.
func Default() (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		blob, err := fs.ReadFile(defaultData, "data/"+name)
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog %s: %w", name, err)
		}
		return blob, nil
	}
	return loadFrom(read)
}

func loadFrom(read func(name string) ([]byte, error)) (*Catalog, error) {
	var pests map[string][]PestAssociation
	var details map[string]PestDetails
	var treatments map[string]TreatmentProfile

	blob, err := read(PestsFile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blob, &pests); err != nil {
		return nil, fmt.Errorf("parse %s: %w", PestsFile, err)
	}
	blob, err = read(PestDetailsFile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blob, &details); err != nil {
		return nil, fmt.Errorf("parse %s: %w", PestDetailsFile, err)
	}
	blob, err = read(TreatmentsFile)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blob, &treatments); err != nil {
		return nil, fmt.Errorf("parse %s: %w", TreatmentsFile, err)
	}
	return NewCatalog(pests, details, treatments)
}
