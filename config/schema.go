package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/enioarz/ontology-server/errors"
)

//go:embed schema.json
var schemaJSON []byte

var fileSchema = mustSchema(schemaJSON)

func mustSchema(src []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(src))
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return s
}

// Schema returns the JSON schema configuration files are checked against.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

// validateSchema checks a decoded configuration file against the schema.
func validateSchema(path string, raw map[string]any) error {
	doc, err := json.Marshal(raw)
	if err != nil {
		return errors.WrapInvalid(err, "Loader", "validateSchema", "encode "+path)
	}
	result, err := fileSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return errors.WrapInvalid(err, "Loader", "validateSchema", "validate "+path)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.WrapInvalid(fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(msgs, "; ")),
		"Loader", "validateSchema", "validate "+path)
}
