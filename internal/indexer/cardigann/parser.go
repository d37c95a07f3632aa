package cardigann

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// requiredTopLevelFields lists the identity fields every definition must
// carry, in reporting order.
var requiredTopLevelFields = []struct {
	name  string
	value func(*Definition) bool
}{
	{"id", func(d *Definition) bool { return d.ID != "" }},
	{"name", func(d *Definition) bool { return d.Name != "" }},
	{"description", func(d *Definition) bool { return d.Description != "" }},
	{"language", func(d *Definition) bool { return d.Language != "" }},
	{"type", func(d *Definition) bool { return d.Type != "" }},
	{"encoding", func(d *Definition) bool { return d.Encoding != "" }},
	{"links", func(d *Definition) bool { return len(d.Links) > 0 }},
}

// ParseDefinition parses and validates a Cardigann YAML definition.
// A returned Definition always passes ValidateDefinition; a failure is
// always a *DefinitionError carrying the first problem found.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &DefinitionError{
			Code:   ErrCodeInvalidYAML,
			Detail: err.Error(),
			Cause:  err,
		}
	}

	if err := validateSearch(&def.Search); err != nil {
		return nil, err
	}
	if err := validateLogin(def.Login); err != nil {
		return nil, err
	}
	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}

	return &def, nil
}

// ParseDefinitionFile parses a definition from a file on disk.
func ParseDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return def, nil
}

// validateSearch checks the structural integrity of the search block:
// at least one path, a rows selector, and title and size fields. Without
// these no result row can ever be extracted.
func validateSearch(s *SearchBlock) error {
	if len(s.Paths) == 0 {
		return newError(ErrCodeMissingSearchPath, "search block must define a path or paths")
	}
	for i, p := range s.Paths {
		if p.Path == "" {
			return newError(ErrCodeMissingSearchPath, "search path %d has an empty path", i)
		}
	}

	if s.Rows.Selector == "" {
		return newError(ErrCodeMissingRowsSelector, "search block must define a rows selector")
	}

	if len(s.Fields) == 0 {
		return newError(ErrCodeMissingFields, "search block must define result fields")
	}
	for _, field := range []string{"title", "size"} {
		if _, ok := s.Fields[field]; !ok {
			return newError(ErrCodeMissingFields, "search fields must include %q", field)
		}
	}

	return nil
}

// validateLogin checks the login block when present. A nil login means a
// public indexer and is always valid.
func validateLogin(l *LoginBlock) error {
	if l == nil {
		return nil
	}

	switch l.Method {
	case "":
		return newError(ErrCodeMissingLoginMethod, "login block must define a method")
	case "form", "post", "get":
		if l.Path == "" && l.SubmitPath == "" {
			return newError(ErrCodeMissingLoginMethod, "login method %q requires a path or submitpath", l.Method)
		}
		if len(l.Inputs) == 0 {
			return newError(ErrCodeMissingLoginMethod, "login method %q requires inputs", l.Method)
		}
		if len(l.Error) == 0 {
			return newError(ErrCodeMissingLoginMethod, "login method %q requires an error selector", l.Method)
		}
		if l.Test.Path == "" && l.Test.Selector == "" {
			return newError(ErrCodeMissingLoginMethod, "login method %q requires a test block", l.Method)
		}
	case "cookie":
		if len(l.Cookies) == 0 {
			return newError(ErrCodeMissingLoginMethod, "login method cookie requires cookie names")
		}
	default:
		return newError(ErrCodeMissingLoginMethod, "unknown login method %q", l.Method)
	}

	return nil
}

// ValidateDefinition checks a parsed definition for the invariants every
// usable indexer must hold: the identity fields, the search fields a
// scored result needs, and at least one declared search mode. It accepts
// every Definition that ParseDefinition returns.
func ValidateDefinition(d *Definition) error {
	for _, f := range requiredTopLevelFields {
		if !f.value(d) {
			return newError(ErrCodeMissingRequiredFields, "definition must set %q", f.name)
		}
	}

	for _, field := range []string{"title", "size", "seeders"} {
		if _, ok := d.Search.Fields[field]; !ok {
			return newError(ErrCodeMissingSearchFields, "search fields must include %q", field)
		}
	}

	if len(d.Caps.Modes) == 0 {
		return newError(ErrCodeMissingCapabilityModes, "caps must declare at least one search mode")
	}

	return nil
}
