// Package ingest discovers and decodes extracted product-record JSON files.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/bmatcuk/doublestar/v4"
)

// recordGlob matches extracted record files anywhere under the input root.
const recordGlob = "**/*.json"

// LoadRecords loads product records from a file or directory. A directory is
// walked recursively for *.json files. Records without a brand are skipped
// with a warning; malformed JSON on a matched file is an error, never a
// silent drop. The result is sorted by brand, and when several files carry
// the same brand the lexically last file wins, with a warning.
func LoadRecords(path string) ([]schema.ProductRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input path %q: %w", path, err)
	}

	if !info.IsDir() {
		rec, err := decodeRecordFile(path)
		if err != nil {
			return nil, err
		}
		if rec.Brand == "" {
			logSkippedRecord(path)
			return []schema.ProductRecord{}, nil
		}
		return []schema.ProductRecord{*rec}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(path), recordGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q for records: %w", path, err)
	}
	// Lexical file order makes the duplicate-brand policy reproducible.
	sort.Strings(matches)

	byBrand := make(map[string]schema.ProductRecord, len(matches))
	for _, match := range matches {
		full := filepath.Join(path, match)
		rec, err := decodeRecordFile(full)
		if err != nil {
			return nil, err
		}
		if rec.Brand == "" {
			logSkippedRecord(full)
			continue
		}
		if _, seen := byBrand[rec.Brand]; seen {
			logDuplicateBrand(rec.Brand, full)
		}
		byBrand[rec.Brand] = *rec
	}

	records := make([]schema.ProductRecord, 0, len(byBrand))
	for _, rec := range byBrand {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Brand < records[j].Brand
	})

	return records, nil
}

// decodeRecordFile reads and decodes one extracted record. Unknown JSON
// members (extraction-quality blocks and the like) are ignored.
func decodeRecordFile(path string) (*schema.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %q: %w", path, err)
	}

	var rec schema.ProductRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %q: %w", path, err)
	}
	return &rec, nil
}

func logSkippedRecord(path string) {
	fmt.Fprintf(os.Stderr, "⚠️  Skipping %s: record has no brand\n", path)
}

func logDuplicateBrand(brand, path string) {
	fmt.Fprintf(os.Stderr, "⚠️  Duplicate brand %q: keeping %s\n", brand, path)
}
