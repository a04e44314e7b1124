// Command genzipdata converts a CSV of ZIP offsets into the JSON dataset
// document served to ziptimed. Each CSV row is "zip,utc,dst", for example
// "90210,-8,true". Codes are normalized so the served document always uses
// canonical five-digit keys.
//
// Usage:
//
//	go run ./cmd/genzipdata -csv data/zip_offsets.csv -out data/zipdata.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "input CSV of zip,utc,dst rows")
	outPath := flag.String("out", "", "output path for the JSON dataset")
	flag.Parse()

	if *csvPath == "" || *outPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -out")
	}

	table, err := loadCSV(*csvPath)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(*outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	log.Printf("wrote %d entries to %s", len(table), *outPath)
	return nil
}

func loadCSV(path string) (domain.OffsetTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	table := make(domain.OffsetTable, len(rows))
	for i, row := range rows {
		if i == 0 && row[0] == "zip" {
			continue // header row
		}
		if len(row) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(row))
		}

		zip, ok := domain.NormalizeZip(row[0])
		if !ok {
			return nil, fmt.Errorf("row %d: invalid zip %q", i+1, row[0])
		}
		utc, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid utc offset %q", i+1, row[1])
		}
		dst, err := strconv.ParseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid dst flag %q", i+1, row[2])
		}

		if prev, exists := table[zip]; exists && (prev.UTCOffsetHours != utc || prev.ObservesDST != dst) {
			return nil, fmt.Errorf("row %d: conflicting entries for zip %s", i+1, zip)
		}
		table[zip] = domain.OffsetRecord{UTCOffsetHours: utc, ObservesDST: dst}
	}
	return table, nil
}
