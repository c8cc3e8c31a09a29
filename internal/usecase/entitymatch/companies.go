// Package entitymatch canonicalizes entity mentions extracted from a query
// against the reference vocabularies: the listed-company table, the hardcoded
// team rosters, and the remote knowledge sources for music and movies.
package entitymatch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CompanyTable maps listed-company names to ticker symbols and back. It is
// loaded once at startup; a missing or unreadable file is a fatal error.
type CompanyTable struct {
	nameToSymbol map[string]string
	symbolToName map[string]string
	symbolSet    map[string]struct{}
}

// LoadCompanyTable reads the company CSV at path. The file has a header row
// and at least three columns; the second holds the company name and the third
// the ticker symbol.
func LoadCompanyTable(path string) (*CompanyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open company table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read company table %s: %w", path, err)
	}

	table := &CompanyTable{
		nameToSymbol: make(map[string]string),
		symbolToName: make(map[string]string),
		symbolSet:    make(map[string]struct{}),
	}
	for _, rec := range records {
		if len(rec) < 3 || rec[1] == "Name" {
			continue
		}
		name := strings.TrimSpace(rec[1])
		symbol := strings.TrimSpace(rec[2])
		table.nameToSymbol[strings.ToLower(name)] = symbol
		table.symbolToName[symbol] = name
		table.symbolSet[symbol] = struct{}{}
	}
	return table, nil
}

// SymbolByName resolves a company name (case-insensitive) to its ticker.
func (t *CompanyTable) SymbolByName(name string) (string, bool) {
	symbol, ok := t.nameToSymbol[strings.ToLower(strings.TrimSpace(name))]
	return symbol, ok
}

// NameBySymbol resolves a ticker to the company name. Unknown tickers return
// the ticker itself so report headers always have something to print.
func (t *CompanyTable) NameBySymbol(symbol string) string {
	if name, ok := t.symbolToName[symbol]; ok {
		return name
	}
	return symbol
}

// HasSymbol reports whether the uppercase ticker is listed.
func (t *CompanyTable) HasSymbol(symbol string) bool {
	_, ok := t.symbolSet[symbol]
	return ok
}
