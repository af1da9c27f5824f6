// Package config provides infrastructure for loading batch request documents.
// This package handles YAML and TOML parsing, file I/O, schema validation,
// and apiVersion compatibility.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dunjia/qimen/internal/application/dto"
	apperrors "github.com/dunjia/qimen/internal/application/errors"
	"github.com/dunjia/qimen/internal/application/ports"
	"github.com/dunjia/qimen/internal/version"
)

// SupportedAPIVersions is the apiVersion range this build reads.
const SupportedAPIVersions = "^" + version.BatchAPIVersion

const schemaURL = "batch.schema.json"

//go:embed schema/batch.schema.json
var batchSchema []byte

// Format is a batch document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Ensure interface compliance
var _ ports.RequestLoader = (*RequestLoader)(nil)

// RequestLoader reads batch documents from disk.
//
// A document is decoded, validated against the embedded JSON schema, checked
// for a compatible apiVersion, and has its defaults applied before it is
// returned. Pillar and term values are not parsed here; that is the chart
// service's job.
type RequestLoader struct {
	constraint *semver.Constraints
}

// NewRequestLoader creates a new request loader.
func NewRequestLoader() *RequestLoader {
	c, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		panic(fmt.Sprintf("invalid apiVersion constraint %q: %v", SupportedAPIVersions, err))
	}
	return &RequestLoader{constraint: c}
}

// Load loads a batch document, choosing the decoder by file extension.
func (l *RequestLoader) Load(path string) (*dto.BatchRequest, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, apperrors.NewConfigurationError("request", path, err)
	}

	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("request", "failed to open document directory", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, apperrors.NewConfigurationError("request", "failed to open document", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	req, err := l.LoadFromReader(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// LoadFromReader loads a batch document in the given format from an io.Reader.
func (l *RequestLoader) LoadFromReader(r io.Reader, format Format) (*dto.BatchRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewConfigurationError("request", "failed to read document", err)
	}

	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, apperrors.NewConfigurationError("request", fmt.Sprintf("failed to decode %s", format), err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, apperrors.NewConfigurationError("schema", "document does not match the batch schema", err)
	}

	var req dto.BatchRequest
	if err := decodeTyped(data, format, &req); err != nil {
		return nil, apperrors.NewConfigurationError("request", fmt.Sprintf("failed to decode %s", format), err)
	}
	if err := l.checkAPIVersion(req.APIVersion); err != nil {
		return nil, err
	}

	req.ApplyDefaults()
	return &req, nil
}

func (l *RequestLoader) checkAPIVersion(v string) error {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return apperrors.NewConfigurationError("apiVersion", fmt.Sprintf("invalid apiVersion %q", v), err)
	}
	if !l.constraint.Check(parsed) {
		return apperrors.NewConfigurationError("apiVersion",
			fmt.Sprintf("apiVersion %s is not supported (want %s)", parsed, SupportedAPIVersions), nil)
	}
	return nil
}

// decodeRaw decodes the document generically and normalises it through JSON
// so the schema validator sees only JSON value types.
func decodeRaw(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(b, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func decodeTyped(data []byte, format Format, req *dto.BatchRequest) error {
	switch format {
	case FormatYAML:
		return yaml.NewDecoder(bytes.NewReader(data)).Decode(req)
	case FormatTOML:
		return toml.Unmarshal(data, req)
	case FormatJSON:
		return json.Unmarshal(data, req)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func validateSchema(doc any) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(batchSchema)); err != nil {
		return fmt.Errorf("failed to add batch schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile batch schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return err
	}
	return nil
}

// formatSchemaValidationError flattens a JSON Schema validation error tree
// into one message per failing location.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return errors.New("validation failed")
	}
	return errors.New(strings.Join(messages, "; "))
}
