package routine

import (
	"fmt"
	"io"

	"github.com/alexanderramin/fluxion/internal/domain"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML document used for routine import and export.
type CatalogFile struct {
	Version int          `yaml:"version"`
	Blocks  []BlockEntry `yaml:"blocks"`
}

// BlockEntry is one block in a catalog file. Day accepts 0..6 or a weekday
// name; Start is "HH:MM".
type BlockEntry struct {
	ID       string  `yaml:"id,omitempty"`
	Title    string  `yaml:"title"`
	Category string  `yaml:"category"`
	Day      Weekday `yaml:"day"`
	Start    string  `yaml:"start"`
	Duration float64 `yaml:"duration"`
}

const catalogVersion = 1

// DecodeCatalog parses a catalog file from r.
func DecodeCatalog(r io.Reader) (*CatalogFile, error) {
	var f CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &CatalogFile{Version: catalogVersion}, nil
		}
		return nil, fmt.Errorf("parsing routine file: %w", err)
	}
	return &f, nil
}

// EncodeCatalog writes blocks as a catalog file.
func EncodeCatalog(w io.Writer, blocks []*domain.RoutineBlock) error {
	f := CatalogFile{Version: catalogVersion, Blocks: make([]BlockEntry, 0, len(blocks))}
	for _, b := range blocks {
		f.Blocks = append(f.Blocks, BlockEntry{
			ID:       b.ID,
			Title:    b.Title,
			Category: string(b.Category),
			Day:      Weekday(b.Day),
			Start:    fmt.Sprintf("%02d:%02d", b.StartHour, b.StartMinute),
			Duration: b.DurationHours,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("writing routine file: %w", err)
	}
	return enc.Close()
}
