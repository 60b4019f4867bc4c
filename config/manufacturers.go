package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/catalogpipe/core"
)

// DefaultManufacturersFile is the manufacturers config path used when
// none is given on the command line.
const DefaultManufacturersFile = "manufacturers_config.json"

// Manufacturers is the on-disk manufacturers list.
type Manufacturers struct {
	Manufacturers []core.Manufacturer `json:"manufacturers"`
}

// LoadManufacturers reads the manufacturers file. A missing file is
// not an error: a single-manufacturer default is synthesized and
// written back so the operator has something to edit.
func LoadManufacturers(path string) (*Manufacturers, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		def := defaultManufacturers()
		if err := def.Save(path); err != nil {
			return nil, fmt.Errorf("writing default manufacturers config: %w", err)
		}
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manufacturers config %s: %w", path, err)
	}

	var m Manufacturers
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manufacturers config %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manufacturers list back to disk.
func (m *Manufacturers) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding manufacturers config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manufacturers config %s: %w", path, err)
	}
	return nil
}

// Add appends a manufacturer to the list. An empty pattern list
// defaults to matching plain .pdf links.
func (m *Manufacturers) Add(name, code string, catalogPages, pdfPatterns []string) {
	if len(pdfPatterns) == 0 {
		pdfPatterns = []string{`\.pdf$`}
	}
	m.Manufacturers = append(m.Manufacturers, core.Manufacturer{
		Name:         name,
		Code:         code,
		CatalogPages: catalogPages,
		PDFPatterns:  pdfPatterns,
	})
}

// defaultManufacturers is the first-run config: one manufacturer,
// enough to demonstrate the expected shape of the file.
func defaultManufacturers() *Manufacturers {
	return &Manufacturers{
		Manufacturers: []core.Manufacturer{
			{
				Name: "Furukawa Electric",
				Code: "FURUKAWA",
				CatalogPages: []string{
					"https://www.furukawa.co.jp/en/product/catalogue/#anchor_1_1",
					"https://www.furukawa.co.jp/en/product/catalogue/#anchor_1_2",
					"https://www.furukawa.co.jp/en/product/catalogue/#anchor_1_3",
					"https://www.furukawa.co.jp/en/product/catalogue/#anchor_1_4",
				},
				PDFPatterns: []string{
					`\.pdf$`,
					`/pdf/`,
					`/catalog/`,
				},
			},
		},
	}
}
