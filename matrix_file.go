package renderbench

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

type matrixFile struct {
	Scenario []struct {
		Destination string `toml:"destination"`
		Scale       string `toml:"scale"`
		Filter      string `toml:"filter"`
	} `toml:"scenario"`
}

// LoadMatrix reads a scenario matrix from a TOML file of the form
//
//	[[scenario]]
//	destination = "offscreen"
//	scale = "double"
//	filter = "bilinear"
func LoadMatrix(fileName string) ([]Scenario, error) {
	var file matrixFile
	if _, err := toml.DecodeFile(fileName, &file); err != nil {
		return nil, fmt.Errorf("matrix %s: %w", fileName, err)
	}
	return file.scenarios()
}

// ParseMatrix parses a scenario matrix from TOML text.
func ParseMatrix(text string) ([]Scenario, error) {
	var file matrixFile
	if _, err := toml.Decode(text, &file); err != nil {
		return nil, err
	}
	return file.scenarios()
}

func (f *matrixFile) scenarios() ([]Scenario, error) {
	if len(f.Scenario) == 0 {
		return nil, errors.New("matrix has no scenarios")
	}

	matrix := make([]Scenario, 0, len(f.Scenario))
	for i, entry := range f.Scenario {
		dest, err := ParseDestination(entry.Destination)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		scale, err := ParseScale(entry.Scale)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		filter := FilterNearest
		if entry.Filter != "" {
			if filter, err = ParseFilter(entry.Filter); err != nil {
				return nil, fmt.Errorf("scenario %d: %w", i, err)
			}
		}
		matrix = append(matrix, Scenario{Destination: dest, Scale: scale, Filter: filter})
	}
	return matrix, nil
}
