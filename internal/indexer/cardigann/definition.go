// Package cardigann parses Cardigann-compatible indexer definitions.
// A definition is a declarative YAML document describing how to query and
// scrape one torrent/usenet indexer site. The format accepts several shape
// variants for the same concepts (bare-string vs object selectors, single
// path vs path list, scalar vs list filter args); parsing normalizes all
// of them so downstream code never re-branches on input shape.
package cardigann

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringValue accepts any YAML scalar (string, bool, number) and stores
// its literal text. Definition authors write checkbox defaults and
// category IDs as bare scalars, so plain string decoding is too strict.
type StringValue string

// UnmarshalYAML implements custom YAML unmarshaling for StringValue.
func (s *StringValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("cannot unmarshal %v into scalar value", value.Kind)
	}
	*s = StringValue(value.Value)
	return nil
}

// Definition represents a parsed Cardigann YAML definition file.
// A Definition is immutable once produced: it is created only by
// ParseDefinition and never mutated afterwards.
type Definition struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Language    string   `yaml:"language" json:"language"`
	Type        string   `yaml:"type" json:"type"`         // public, private, semi-private
	Encoding    string   `yaml:"encoding" json:"encoding"` // UTF-8, etc.
	Links       []string `yaml:"links" json:"links"`

	Caps     Capabilities   `yaml:"caps" json:"caps"`
	Settings []Setting      `yaml:"settings" json:"settings,omitempty"`
	Login    *LoginBlock    `yaml:"login" json:"login,omitempty"`
	Download *DownloadBlock `yaml:"download" json:"download,omitempty"`
	Search   SearchBlock    `yaml:"search" json:"search"`
}

// Capabilities describes what search modes and categories the indexer supports.
type Capabilities struct {
	CategoryMappings []CategoryMapping   `yaml:"categorymappings" json:"categorymappings,omitempty"`
	Modes            map[string][]string `yaml:"modes" json:"modes"` // search, tv-search, movie-search -> supported params
}

// CategoryMapping maps indexer-specific category IDs to standard categories.
type CategoryMapping struct {
	ID      StringValue `yaml:"id" json:"id"`
	Cat     string      `yaml:"cat" json:"cat"`
	Desc    string      `yaml:"desc" json:"desc,omitempty"`
	Default bool        `yaml:"default" json:"default,omitempty"`
}

// Setting defines a user-configurable option for the indexer.
type Setting struct {
	Name    string            `yaml:"name" json:"name"`
	Type    string            `yaml:"type" json:"type"` // text, checkbox, select
	Label   string            `yaml:"label" json:"label"`
	Default StringValue       `yaml:"default" json:"default,omitempty"`
	Options map[string]string `yaml:"options" json:"options,omitempty"` // For select type
}

// LoginBlock defines how to authenticate with the indexer.
type LoginBlock struct {
	Path       string            `yaml:"path" json:"path,omitempty"`
	SubmitPath string            `yaml:"submitpath" json:"submitpath,omitempty"`
	Method     string            `yaml:"method" json:"method"` // form, cookie, post, get
	Inputs     map[string]string `yaml:"inputs" json:"inputs,omitempty"`
	Error      []ErrorSelector   `yaml:"error" json:"error,omitempty"`
	Test       TestBlock         `yaml:"test" json:"test,omitempty"`
	Cookies    []string          `yaml:"cookies" json:"cookies,omitempty"` // Required cookie names
}

// ErrorSelector defines how to detect and extract login error messages.
type ErrorSelector struct {
	Selector string          `yaml:"selector" json:"selector"`
	Message  *TextOrSelector `yaml:"message" json:"message,omitempty"`
}

// TextOrSelector can be either static text or a selector definition.
type TextOrSelector struct {
	Text     string `yaml:"text" json:"text,omitempty"`
	Selector string `yaml:"selector" json:"selector,omitempty"`
}

// TestBlock defines how to verify successful authentication.
type TestBlock struct {
	Path     string `yaml:"path" json:"path,omitempty"`
	Selector string `yaml:"selector" json:"selector,omitempty"`
}

// SearchBlock defines how to execute searches and parse results. The YAML
// accepts a single `path` or a `paths` list; both normalize to Paths.
type SearchBlock struct {
	Paths  []SearchPath        `json:"paths"`
	Inputs map[string]string   `json:"inputs,omitempty"`
	Rows   Selector            `json:"rows"`
	Fields map[string]Selector `json:"fields"`
}

// UnmarshalYAML implements custom YAML unmarshaling for SearchBlock,
// folding the single-path shorthand into the path list.
func (s *SearchBlock) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Path   string              `yaml:"path"`
		Paths  []SearchPath        `yaml:"paths"`
		Inputs map[string]string   `yaml:"inputs"`
		Rows   Selector            `yaml:"rows"`
		Fields map[string]Selector `yaml:"fields"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	s.Paths = raw.Paths
	if raw.Path != "" {
		s.Paths = append([]SearchPath{{Path: raw.Path}}, s.Paths...)
	}
	s.Inputs = raw.Inputs
	s.Rows = raw.Rows
	s.Fields = raw.Fields
	return nil
}

// SearchPath defines a search endpoint, optionally restricted to certain
// categories.
type SearchPath struct {
	Path       string        `yaml:"path" json:"path"`
	Categories []StringValue `yaml:"categories" json:"categories,omitempty"`
	Method     string        `yaml:"method" json:"method,omitempty"` // GET or POST
}

// Selector defines how to extract one value. The YAML shape is either a
// bare CSS-selector string or a full object; both normalize to this one
// representation.
type Selector struct {
	Selector  string            `yaml:"selector" json:"selector"`
	Attribute string            `yaml:"attribute" json:"attribute,omitempty"` // href, src, value, etc.
	Text      string            `yaml:"text" json:"text,omitempty"`           // Static value
	Remove    string            `yaml:"remove" json:"remove,omitempty"`       // Strip matching sub-elements first
	Optional  bool              `yaml:"optional" json:"optional,omitempty"`
	Default   StringValue       `yaml:"default" json:"default,omitempty"`
	Filters   []Filter          `yaml:"filters" json:"filters,omitempty"`
	Case      map[string]string `yaml:"case" json:"case,omitempty"` // Value mapping
}

// UnmarshalYAML implements custom YAML unmarshaling for Selector,
// accepting the bare-string shorthand.
func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.Selector = value.Value
		return nil
	case yaml.MappingNode:
		type plain Selector
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*s = Selector(p)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %v into selector", value.Kind)
	}
}

// Filter is a named value transform with its arguments. The YAML accepts
// a scalar arg or a list; both normalize to a string slice.
type Filter struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for Filter.
func (f *Filter) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name string     `yaml:"name"`
		Args *yaml.Node `yaml:"args"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	f.Name = raw.Name
	f.Args = nil
	if raw.Args == nil {
		return nil
	}

	switch raw.Args.Kind {
	case yaml.ScalarNode:
		f.Args = []string{raw.Args.Value}
	case yaml.SequenceNode:
		for _, item := range raw.Args.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("filter %q: args must be scalars", raw.Name)
			}
			f.Args = append(f.Args, item.Value)
		}
	default:
		return fmt.Errorf("filter %q: cannot unmarshal %v into args", raw.Name, raw.Args.Kind)
	}
	return nil
}

// DownloadBlock defines how to construct download URLs.
type DownloadBlock struct {
	Selectors []Selector     `yaml:"selectors" json:"selectors,omitempty"`
	Method    string         `yaml:"method" json:"method,omitempty"`
	InfoHash  *InfoHashBlock `yaml:"infohash" json:"infohash,omitempty"`
}

// InfoHashBlock defines how to extract magnet link info.
type InfoHashBlock struct {
	Hash  Selector `yaml:"hash" json:"hash"`
	Title Selector `yaml:"title" json:"title"`
}

// GetBaseURL returns the primary URL for this indexer.
func (d *Definition) GetBaseURL() string {
	if len(d.Links) > 0 {
		return d.Links[0]
	}
	return ""
}

// GetPrivacy returns the privacy level (public, private, semi-private).
func (d *Definition) GetPrivacy() string {
	if d.Type == "" {
		return "public"
	}
	return d.Type
}

// HasLogin returns true if this indexer requires authentication.
func (d *Definition) HasLogin() bool {
	return d.Login != nil && d.Login.Method != ""
}

// SupportsSearch returns true if the indexer supports the given search mode.
func (d *Definition) SupportsSearch(mode string) bool {
	if d.Caps.Modes == nil {
		return false
	}
	_, ok := d.Caps.Modes[mode]
	return ok
}

// SettingDefaults returns the default value of every declared setting.
func (d *Definition) SettingDefaults() map[string]string {
	defaults := make(map[string]string, len(d.Settings))
	for _, s := range d.Settings {
		defaults[s.Name] = string(s.Default)
	}
	return defaults
}
