// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/veronicatozzo/regain/ltgl"
)

// loadConfig reads a YAML solver configuration on top of the defaults.
// Unknown keys are rejected; an empty path yields the defaults.
func loadConfig(path string) (ltgl.Config, error) {
	cfg := ltgl.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// readCSV parses a numeric CSV file into a rows×cols matrix.
func readCSV(path string, header bool) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if header && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("read %s: no observations", path)
	}

	rows, cols := len(records), len(records[0])
	data := make([]float64, 0, rows*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("read %s: row %d column %d: %w", path, i+1, j+1, err)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(rows, cols, data), nil
}
