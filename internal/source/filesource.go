// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/salary-engine/pkg/types"
)

// FileAdapter reads observation batches from a directory of YAML or JSON
// files. Compensation-survey catalogs are typically delivered as files, so
// the adapter treats each file as one batch and matches batches to the query
// by title substring.
type FileAdapter struct {
	// Dir is the directory holding *.yaml, *.yml, and *.json batch files.
	Dir string

	// SourceName is the identifier attached to observations whose batch
	// file does not name its own source. Defaults to "survey_files".
	SourceName string
}

// batchFile is the on-disk shape of one observation batch. Monetary amounts
// are decimal strings so currency precision survives the file format.
type batchFile struct {
	// Source names the provider for all observations in the batch.
	Source string `json:"source" yaml:"source"`

	// Title is the job title the batch applies to.
	Title string `json:"title" yaml:"title"`

	// Observations lists the data points.
	Observations []fileObservation `json:"observations" yaml:"observations"`
}

// fileObservation is one data point in a batch file. Either salary, or
// salary_min and salary_max, must be present.
type fileObservation struct {
	Salary     string    `json:"salary,omitempty" yaml:"salary,omitempty"`
	SalaryMin  string    `json:"salary_min,omitempty" yaml:"salary_min,omitempty"`
	SalaryMax  string    `json:"salary_max,omitempty" yaml:"salary_max,omitempty"`
	Currency   string    `json:"currency" yaml:"currency"`
	ObservedAt time.Time `json:"observed_at" yaml:"observed_at"`
	TitleMatch *float64  `json:"title_match,omitempty" yaml:"title_match,omitempty"`
}

// Name returns the adapter's source identifier.
func (a *FileAdapter) Name() string {
	if a.SourceName != "" {
		return a.SourceName
	}
	return "survey_files"
}

// Fetch reads every batch file in the directory and returns observations
// from batches whose title matches the query title (case-insensitive
// substring either way). A missing directory is an unavailable source; an
// unreadable or unparsable file skips that file only.
func (a *FileAdapter) Fetch(ctx context.Context, query types.JobQuery) ([]types.RawObservation, error) {
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, a.Name(), err)
	}

	var out []types.RawObservation
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, a.Name(), err)
		}

		batch, err := readBatch(filepath.Join(a.Dir, entry.Name()))
		if err != nil {
			continue
		}
		if !titleMatches(batch.Title, query.Title) {
			continue
		}

		sourceName := batch.Source
		if sourceName == "" {
			sourceName = a.Name()
		}
		for _, fo := range batch.Observations {
			obs, ok := fo.toRaw(sourceName)
			if !ok {
				continue
			}
			out = append(out, obs)
		}
	}

	return out, nil
}

// toRaw converts a file data point to a raw observation; false when the
// point carries no parsable salary.
func (fo fileObservation) toRaw(sourceName string) (types.RawObservation, bool) {
	obs := types.RawObservation{
		Source:     sourceName,
		Currency:   fo.Currency,
		ObservedAt: fo.ObservedAt,
		TitleMatch: fo.TitleMatch,
	}

	switch {
	case fo.Salary != "":
		amount, err := decimal.NewFromString(fo.Salary)
		if err != nil {
			return types.RawObservation{}, false
		}
		obs.Value = types.Single(amount)
	case fo.SalaryMin != "" && fo.SalaryMax != "":
		min, errMin := decimal.NewFromString(fo.SalaryMin)
		max, errMax := decimal.NewFromString(fo.SalaryMax)
		if errMin != nil || errMax != nil {
			return types.RawObservation{}, false
		}
		obs.Value = types.Range(min, max)
	default:
		return types.RawObservation{}, false
	}

	return obs, true
}

func readBatch(path string) (batchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return batchFile{}, err
	}

	var batch batchFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &batch)
	case ".json":
		err = json.Unmarshal(data, &batch)
	default:
		return batchFile{}, fmt.Errorf("unsupported batch file %s", path)
	}
	return batch, err
}

// titleMatches reports whether a batch title and a query title refer to the
// same role, by case-insensitive substring in either direction. A batch with
// no title matches every query.
func titleMatches(batchTitle, queryTitle string) bool {
	if batchTitle == "" {
		return true
	}
	b := strings.ToLower(batchTitle)
	q := strings.ToLower(queryTitle)
	return strings.Contains(b, q) || strings.Contains(q, b)
}
