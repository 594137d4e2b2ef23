package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/skillboard/internal/schemas"
	"github.com/jonathan/skillboard/internal/types"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a dataset from a local path or an http(s) URL.
func Load(ctx context.Context, source string) (types.Dataset, *Metadata, error) {
	if IsURL(source) {
		return LoadDatasetURL(ctx, source, nil)
	}
	return LoadDatasetFile(source)
}

// ReadJSON reads a dataset document from a path or URL and returns it as JSON, converting
// YAML on the way. The document is not checked against any schema.
func ReadJSON(ctx context.Context, source string) ([]byte, error) {
	var (
		raw    []byte
		format Format
		err    error
	)
	if IsURL(source) {
		raw, format, err = fetchURL(ctx, source, nil)
	} else {
		raw, format, err = readFile(source)
	}
	if err != nil {
		return nil, err
	}
	return toJSON(source, raw, format)
}

// LoadDatasetFile reads, schema-checks and validates a JSON or YAML dataset file.
func LoadDatasetFile(path string) (types.Dataset, *Metadata, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}

	dataset, err := ParseDataset(path, data, format)
	if err != nil {
		return nil, nil, err
	}
	return dataset, NewMetadata(path, format, data, dataset), nil
}

func readFile(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", &LoadError{Source: path, Stage: StageRead, Message: "unknown file type", Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &LoadError{Source: path, Stage: StageRead, Message: "failed to read dataset file", Cause: err}
	}
	return data, format, nil
}

// ParseDataset decodes raw dataset bytes. YAML is normalized to JSON first so both
// formats go through the same schema.
func ParseDataset(source string, data []byte, format Format) (types.Dataset, error) {
	jsonData, err := toJSON(source, data, format)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateDataset(jsonData); err != nil {
		return nil, &LoadError{Source: source, Stage: StageSchema, Message: "dataset does not match schema", Cause: err}
	}

	var dataset types.Dataset
	if err := json.Unmarshal(jsonData, &dataset); err != nil {
		return nil, &LoadError{Source: source, Stage: StageParse, Message: "failed to decode dataset", Cause: err}
	}

	if err := dataset.Validate(); err != nil {
		return nil, &LoadError{Source: source, Stage: StageValidate, Message: "dataset is invalid", Cause: err}
	}

	return dataset, nil
}

func toJSON(source string, data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &LoadError{Source: source, Stage: StageParse, Message: "failed to parse YAML", Cause: err}
		}
		return converted, nil
	default:
		return nil, &LoadError{Source: source, Stage: StageParse, Message: string(format), Cause: ErrUnsupportedFormat}
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = []any{}
	}
	return json.Marshal(doc)
}
