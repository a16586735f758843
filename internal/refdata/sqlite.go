package refdata

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// A catalog can be shipped as a single SQLite file instead of a directory of
// JSON files. The whole database is read once at open; nothing touches it
// afterwards. Treatment lists are stored as JSON columns, association rows
// carry a position column so source-table order survives the round trip.

const catalogSchema = `
CREATE TABLE IF NOT EXISTS disease_pests (
	disease            TEXT NOT NULL,
	position           INTEGER NOT NULL,
	pest_name          TEXT NOT NULL,
	scientific_name    TEXT NOT NULL DEFAULT '',
	pest_type          TEXT NOT NULL,
	confidence         REAL NOT NULL,
	lifecycle_info     TEXT NOT NULL DEFAULT '',
	damage_description TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (disease, position)
);

CREATE TABLE IF NOT EXISTS diseases (
	disease TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS pest_details (
	pest_name          TEXT PRIMARY KEY,
	optimal_conditions TEXT NOT NULL DEFAULT '',
	spread_method      TEXT NOT NULL DEFAULT '',
	host_range         TEXT NOT NULL DEFAULT '',
	economic_impact    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS treatment_profiles (
	disease             TEXT PRIMARY KEY,
	urgency             TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	chemical_treatments TEXT NOT NULL DEFAULT '[]',
	organic_treatments  TEXT NOT NULL DEFAULT '[]',
	prevention          TEXT NOT NULL DEFAULT '[]',
	cultural_practices  TEXT NOT NULL DEFAULT '[]'
);
`

type diseasePestRow struct {
	Disease           string  `db:"disease"`
	Position          int     `db:"position"`
	PestName          string  `db:"pest_name"`
	ScientificName    string  `db:"scientific_name"`
	PestType          string  `db:"pest_type"`
	Confidence        float64 `db:"confidence"`
	LifecycleInfo     string  `db:"lifecycle_info"`
	DamageDescription string  `db:"damage_description"`
}

type pestDetailRow struct {
	PestName          string `db:"pest_name"`
	OptimalConditions string `db:"optimal_conditions"`
	SpreadMethod      string `db:"spread_method"`
	HostRange         string `db:"host_range"`
	EconomicImpact    string `db:"economic_impact"`
}

type treatmentProfileRow struct {
	Disease            string `db:"disease"`
	Urgency            string `db:"urgency"`
	Description        string `db:"description"`
	ChemicalTreatments string `db:"chemical_treatments"`
	OrganicTreatments  string `db:"organic_treatments"`
	Prevention         string `db:"prevention"`
	CulturalPractices  string `db:"cultural_practices"`
}

// LoadSQLite opens a compiled catalog database and reads all three tables
// into an immutable Catalog. The connection is closed before returning.
func LoadSQLite(dbPath string) (*Catalog, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()

	pests := map[string][]PestAssociation{}
	var diseaseRows []string
	if err := db.Select(&diseaseRows, `SELECT disease FROM diseases`); err != nil {
		return nil, fmt.Errorf("load diseases: %w", err)
	}
	for _, d := range diseaseRows {
		pests[d] = nil
	}

	var assocRows []diseasePestRow
	if err := db.Select(&assocRows, `SELECT * FROM disease_pests ORDER BY disease, position`); err != nil {
		return nil, fmt.Errorf("load disease_pests: %w", err)
	}
	for _, row := range assocRows {
		pests[row.Disease] = append(pests[row.Disease], PestAssociation{
			PestName:          row.PestName,
			ScientificName:    row.ScientificName,
			PestType:          PestType(row.PestType),
			Confidence:        row.Confidence,
			LifecycleInfo:     row.LifecycleInfo,
			DamageDescription: row.DamageDescription,
		})
	}

	var detailRows []pestDetailRow
	if err := db.Select(&detailRows, `SELECT * FROM pest_details`); err != nil {
		return nil, fmt.Errorf("load pest_details: %w", err)
	}
	details := map[string]PestDetails{}
	for _, row := range detailRows {
		details[row.PestName] = PestDetails{
			OptimalConditions: row.OptimalConditions,
			SpreadMethod:      row.SpreadMethod,
			HostRange:         row.HostRange,
			EconomicImpact:    row.EconomicImpact,
		}
	}

	var profileRows []treatmentProfileRow
	if err := db.Select(&profileRows, `SELECT * FROM treatment_profiles`); err != nil {
		return nil, fmt.Errorf("load treatment_profiles: %w", err)
	}
	treatments := map[string]TreatmentProfile{}
	for _, row := range profileRows {
		profile := TreatmentProfile{
			Urgency:     Urgency(row.Urgency),
			Description: row.Description,
		}
		if err := json.Unmarshal([]byte(row.ChemicalTreatments), &profile.ChemicalTreatments); err != nil {
			return nil, fmt.Errorf("disease %q: parse chemical_treatments: %w", row.Disease, err)
		}
		if err := json.Unmarshal([]byte(row.OrganicTreatments), &profile.OrganicTreatments); err != nil {
			return nil, fmt.Errorf("disease %q: parse organic_treatments: %w", row.Disease, err)
		}
		if err := json.Unmarshal([]byte(row.Prevention), &profile.Prevention); err != nil {
			return nil, fmt.Errorf("disease %q: parse prevention: %w", row.Disease, err)
		}
		if err := json.Unmarshal([]byte(row.CulturalPractices), &profile.CulturalPractices); err != nil {
			return nil, fmt.Errorf("disease %q: parse cultural_practices: %w", row.Disease, err)
		}
		treatments[row.Disease] = profile
	}

	return NewCatalog(pests, details, treatments)
}

// WriteSQLite compiles a catalog into a SQLite file, replacing any existing
// rows. Used by catalog-compile; the runtime never writes.
func WriteSQLite(dbPath string, c *Catalog) error {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(catalogSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"disease_pests", "diseases", "pest_details", "treatment_profiles"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for disease, assocs := range c.pests {
		if _, err := tx.Exec(`INSERT INTO diseases (disease) VALUES (?)`, disease); err != nil {
			return fmt.Errorf("insert disease %q: %w", disease, err)
		}
		for i, a := range assocs {
			_, err := tx.Exec(`INSERT INTO disease_pests
				(disease, position, pest_name, scientific_name, pest_type, confidence, lifecycle_info, damage_description)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				disease, i, a.PestName, a.ScientificName, string(a.PestType), a.Confidence, a.LifecycleInfo, a.DamageDescription)
			if err != nil {
				return fmt.Errorf("insert association %q/%q: %w", disease, a.PestName, err)
			}
		}
	}

	for pest, d := range c.details {
		_, err := tx.Exec(`INSERT INTO pest_details
			(pest_name, optimal_conditions, spread_method, host_range, economic_impact)
			VALUES (?, ?, ?, ?, ?)`,
			pest, d.OptimalConditions, d.SpreadMethod, d.HostRange, d.EconomicImpact)
		if err != nil {
			return fmt.Errorf("insert details %q: %w", pest, err)
		}
	}

	for disease, profile := range c.treatments {
		chem, err := json.Marshal(profile.ChemicalTreatments)
		if err != nil {
			return fmt.Errorf("encode chemical_treatments %q: %w", disease, err)
		}
		org, err := json.Marshal(profile.OrganicTreatments)
		if err != nil {
			return fmt.Errorf("encode organic_treatments %q: %w", disease, err)
		}
		prev, err := json.Marshal(profile.Prevention)
		if err != nil {
			return fmt.Errorf("encode prevention %q: %w", disease, err)
		}
		cult, err := json.Marshal(profile.CulturalPractices)
		if err != nil {
			return fmt.Errorf("encode cultural_practices %q: %w", disease, err)
		}
		_, err = tx.Exec(`INSERT INTO treatment_profiles
			(disease, urgency, description, chemical_treatments, organic_treatments, prevention, cultural_practices)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			disease, string(profile.Urgency), profile.Description, string(chem), string(org), string(prev), string(cult))
		if err != nil {
			return fmt.Errorf("insert profile %q: %w", disease, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
