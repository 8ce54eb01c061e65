package pointrule

import (
	"cmp"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

//go:embed defaults.yaml
var defaultTables []byte

type document struct {
	Version int              `yaml:"version"`
	Formats map[string]Table `yaml:"formats"`
}

// Default returns the calculator built from the embedded tables.
func Default() (*Calculator, error) {
	return Parse(defaultTables)
}

// Load reads tables from path, falling back to the embedded defaults when path is empty.
func Load(path string) (*Calculator, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read point rules %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Calculator, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode point rules: %w", err)
	}
	if len(doc.Formats) == 0 {
		return nil, fmt.Errorf("point rules define no formats")
	}

	tables := make(map[match.Format]Table, len(doc.Formats))
	for rawFormat, table := range doc.Formats {
		format, err := match.ParseFormat(rawFormat)
		if err != nil {
			return nil, fmt.Errorf("point rules: %w", err)
		}
		if err := normalizeTable(&table); err != nil {
			return nil, fmt.Errorf("point rules %s: %w", format, err)
		}
		tables[format] = table
	}

	return &Calculator{version: doc.Version, tables: tables}, nil
}

func normalizeTable(t *Table) error {
	switch t.Bowling.HaulMode {
	case "":
		t.Bowling.HaulMode = HaulCumulative
	case HaulCumulative, HaulHighest:
	default:
		return fmt.Errorf("unknown haul_mode %q", t.Bowling.HaulMode)
	}

	for _, haul := range t.Bowling.Hauls {
		if haul.Wickets <= 0 {
			return fmt.Errorf("haul wickets must be > 0")
		}
	}
	slices.SortFunc(t.Bowling.Hauls, func(a, b Haul) int { return cmp.Compare(a.Wickets, b.Wickets) })

	for _, band := range t.Batting.StrikeRate {
		if band.Below == nil && band.Above == nil {
			return fmt.Errorf("strike rate band needs below or above")
		}
	}
	for _, band := range t.Bowling.Economy {
		if band.Below == nil && band.Above == nil {
			return fmt.Errorf("economy band needs below or above")
		}
	}
	return nil
}
