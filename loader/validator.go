package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/a11ygl/a11ygl/config"
)

var violationPrinter = message.NewPrinter(language.English)

// schemaNames are the schema documents expected under the schemas
// directory. common.json is only referenced from the others.
var schemaNames = []string{"check", "guideline", "faq"}

// SchemaValidator validates parsed YAML documents against the corpus
// JSON schemas. Reported violations carry the source file path, the
// JSON pointer to the failing node and the validator message; whether
// a violation aborts the load is governed by the validation mode.
type SchemaValidator struct {
	mode    config.ValidationMode
	schemas map[string]*jsonschema.Schema
	logger  *slog.Logger
}

// NewSchemaValidator compiles the corpus schemas found in schemaDir.
// A missing schema file is reported and skipped; a malformed one is
// fatal.
func NewSchemaValidator(schemaDir string, mode config.ValidationMode, logger *slog.Logger) (*SchemaValidator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := &SchemaValidator{
		mode:    mode,
		schemas: map[string]*jsonschema.Schema{},
		logger:  logger,
	}
	if mode == config.ValidationDisabled {
		return v, nil
	}
	compiler := jsonschema.NewCompiler()
	for _, name := range schemaNames {
		path := filepath.Join(schemaDir, name+".json")
		schema, err := compiler.Compile(path)
		if err != nil {
			if isSchemaNotFound(err) {
				logger.Warn("schema file not found, skipping validation", "schema", name, "path", path)
				continue
			}
			return nil, fmt.Errorf("compiling schema %s: %w", path, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

func isSchemaNotFound(err error) bool {
	// The compiler wraps the loader's file-open error.
	return strings.Contains(err.Error(), "no such file") ||
		strings.Contains(err.Error(), "cannot find") ||
		strings.Contains(err.Error(), "not found")
}

// ValidationViolation is one schema violation in one source file.
type ValidationViolation struct {
	FilePath string
	Pointer  string
	Message  string
}

func (v *ValidationViolation) Error() string {
	return fmt.Sprintf("%s: %s: %s", v.FilePath, v.Pointer, v.Message)
}

// Validate checks a parsed document against the named schema,
// honoring the validation mode: strict returns the violation, warning
// logs and continues, disabled does nothing.
func (v *SchemaValidator) Validate(data any, schemaName, filePath string) error {
	if v.mode == config.ValidationDisabled {
		return nil
	}
	schema, ok := v.schemas[schemaName]
	if !ok {
		return nil
	}
	err := schema.Validate(data)
	if err == nil {
		return nil
	}
	violation := &ValidationViolation{
		FilePath: filePath,
		Pointer:  "/",
		Message:  err.Error(),
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := leafCause(ve)
		violation.Pointer = "/" + strings.Join(leaf.InstanceLocation, "/")
		violation.Message = leaf.ErrorKind.LocalizedString(violationPrinter)
	}
	if v.mode == config.ValidationWarning {
		v.logger.Warn("schema violation",
			"file", violation.FilePath,
			"pointer", violation.Pointer,
			"message", violation.Message,
		)
		return nil
	}
	return violation
}

// leafCause descends to the first innermost cause, which names the
// actual failing node.
func leafCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
