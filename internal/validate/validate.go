// Package validate checks request bodies against embedded JSON Schemas
// before they are decoded into typed requests. Field constraints (required
// fields, lengths, enums, empty-string rejection on update) live in the
// schema files, not in handler code.
package validate

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/jobdeck/jobdeck/pkg/apperr"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names accepted by Validator.Validate.
const (
	SchemaRegister       = "register"
	SchemaLogin          = "login"
	SchemaUpdateUser     = "update_user"
	SchemaChangePassword = "change_password"
	SchemaJobCreate      = "job_create"
	SchemaJobUpdate      = "job_update"
)

// Validator holds the compiled schemas. Compile once at startup; Validate is
// safe for concurrent use.
type Validator struct {
	cache map[string]*jsonschema.Schema
}

func New() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	cache := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		raw, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(raw, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		cache[name] = rs
	}

	return &Validator{cache: cache}, nil
}

// Validate checks doc against the named schema. Schema violations come back
// as a single Validation error listing every failed constraint.
func (v *Validator) Validate(ctx context.Context, name string, doc []byte) error {
	schema, ok := v.cache[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	if !json.Valid(doc) {
		return apperr.New(apperr.Validation, "invalid request body")
	}

	verrs, err := schema.ValidateBytes(ctx, doc)
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if len(verrs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		if ve.PropertyPath != "" && ve.PropertyPath != "/" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.TrimPrefix(ve.PropertyPath, "/"), ve.Message))
			continue
		}
		msgs = append(msgs, ve.Message)
	}
	return apperr.New(apperr.Validation, strings.Join(msgs, "; "))
}
