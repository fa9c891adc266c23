package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/zentools/internal/types"
	"github.com/rxtech-lab/zentools/internal/version"
	"gopkg.in/yaml.v2"
)

const (
	// SchemaFileName is the JSON schema written by WriteSchema.
	SchemaFileName = "zentools-job.json"
	// SampleFileName is the sample job written by WriteSchema.
	SampleFileName = "zentools-job.yaml"
)

// GenerateSchema generates a JSON schema for Job
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(optional.Option[int32]{}) {
				return &jsonschema.Schema{
					Type: "integer",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(&Job{})

	// Set schema metadata
	schema.Title = "zentools-job"
	schema.Description = "Job file for the zentools run command"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for Job
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// SampleJob returns a job exercising every section.
func SampleJob() Job {
	return Job{
		Version: version.GetVersion(),
		Input: Input{
			Path:       "data/ETHUSDT_1h.csv",
			DateColumn: "Date",
			Start:      "2023-10-01 00:00:00",
			End:        "2023-10-31 23:00:00",
		},
		Indicators: []IndicatorConfig{
			{Type: types.IndicatorTypeMACD, FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
			{Type: types.IndicatorTypeRSI, Period: 14},
		},
		Transforms: Transforms{
			Stationary: &StationaryConfig{Columns: []string{"Open", "High", "Low", "Close"}, UsePct: true},
			InfToNaN:   true,
		},
		Output: Output{
			Path:             "out/ETHUSDT_1h_features.csv",
			Format:           "csv",
			DecimalPrecision: optional.Some(int32(6)),
		},
	}
}

// WriteSchema writes the JSON schema to dir and, if absent, a sample job pointing at it.
// It returns the written paths.
func WriteSchema(dir string) (schemaPath string, samplePath string, err error) {
	schemaJSON, err := GenerateSchemaJSON()
	if err != nil {
		return "", "", err
	}

	schemaPath = filepath.Join(dir, SchemaFileName)
	samplePath = filepath.Join(dir, SampleFileName)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return "", "", err
	}

	if _, statErr := os.Stat(samplePath); !os.IsNotExist(statErr) {
		return schemaPath, "", nil
	}

	yamlBytes, err := yaml.Marshal(SampleJob())
	if err != nil {
		return "", "", err
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+SchemaFileName+"\n"), yamlBytes...)
	if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
		return "", "", err
	}

	return schemaPath, samplePath, nil
}
