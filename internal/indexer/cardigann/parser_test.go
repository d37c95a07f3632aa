package cardigann

import (
	"errors"
	"testing"
)

const minimalValidYAML = `
id: example
name: Example Indexer
description: A public example tracker
language: en-US
type: public
encoding: UTF-8
links:
  - https://example.org/
caps:
  modes:
    search: [q]
search:
  path: /search
  rows:
    selector: table.results > tbody > tr
  fields:
    title:
      selector: a.title
    size:
      selector: td.size
    seeders:
      selector: td.seeds
`

func TestParseDefinitionMinimal(t *testing.T) {
	def, err := ParseDefinition([]byte(minimalValidYAML))
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	if def.ID != "example" {
		t.Errorf("ID = %q, want example", def.ID)
	}
	if def.GetBaseURL() != "https://example.org/" {
		t.Errorf("GetBaseURL = %q", def.GetBaseURL())
	}
	if def.HasLogin() {
		t.Error("public definition should not report a login")
	}
	if !def.SupportsSearch("search") {
		t.Error("SupportsSearch(search) = false")
	}
	if def.SupportsSearch("tv-search") {
		t.Error("SupportsSearch(tv-search) = true for a definition without it")
	}
	if len(def.Search.Paths) != 1 || def.Search.Paths[0].Path != "/search" {
		t.Errorf("single path shorthand not normalized: %+v", def.Search.Paths)
	}
}

func TestParseDefinitionInvalidYAML(t *testing.T) {
	_, err := ParseDefinition([]byte("id: [unclosed"))
	if !errors.Is(err, ErrInvalidYAML) {
		t.Fatalf("expected invalid_yaml, got %v", err)
	}

	var defErr *DefinitionError
	if !errors.As(err, &defErr) {
		t.Fatal("error is not a DefinitionError")
	}
	if defErr.Cause == nil {
		t.Error("invalid_yaml error lost its cause")
	}
}

func TestParseDefinitionErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "no search paths",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingSearchPath,
		},
		{
			name: "no rows selector",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingRowsSelector,
		},
		{
			name: "no fields at all",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
`,
			want: ErrMissingFields,
		},
		{
			name: "fields missing size",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    seeders: td.seeds
`,
			want: ErrMissingFields,
		},
		{
			name: "fields missing seeders",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
`,
			want: ErrMissingSearchFields,
		},
		{
			name: "missing name",
			yaml: `
id: x
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingRequiredFields,
		},
		{
			name: "no links",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingRequiredFields,
		},
		{
			name: "missing encoding",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingRequiredFields,
		},
		{
			name: "no capability modes",
			yaml: `
id: x
name: X
description: d
language: en-US
type: public
encoding: UTF-8
links: [https://x.example/]
caps:
  categorymappings:
    - {id: 1, cat: Movies}
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`,
			want: ErrMissingCapabilityModes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %v", err, tt.want)
			}
		})
	}
}

func TestParseDefinitionLoginValidation(t *testing.T) {
	base := `
id: x
name: X
description: d
language: en-US
type: private
encoding: UTF-8
links: [https://x.example/]
caps:
  modes:
    search: [q]
search:
  path: /s
  rows: tr
  fields:
    title: a
    size: td.size
    seeders: td.seeds
`

	tests := []struct {
		name    string
		login   string
		wantErr bool
	}{
		{
			name: "valid form login",
			login: `
login:
  path: /login
  method: form
  inputs:
    username: "{{ .Config.username }}"
    password: "{{ .Config.password }}"
  error:
    - selector: div.error
  test:
    path: /profile
`,
		},
		{
			name: "valid cookie login",
			login: `
login:
  method: cookie
  cookies: [uid, pass]
`,
		},
		{
			name: "missing method",
			login: `
login:
  path: /login
  inputs:
    username: u
`,
			wantErr: true,
		},
		{
			name: "form without inputs",
			login: `
login:
  path: /login
  method: form
  error:
    - selector: div.error
  test:
    path: /profile
`,
			wantErr: true,
		},
		{
			name: "form without error selector",
			login: `
login:
  path: /login
  method: form
  inputs:
    username: u
  test:
    path: /profile
`,
			wantErr: true,
		},
		{
			name: "form without test block",
			login: `
login:
  path: /login
  method: form
  inputs:
    username: u
  error:
    - selector: div.error
`,
			wantErr: true,
		},
		{
			name: "cookie without cookie names",
			login: `
login:
  method: cookie
`,
			wantErr: true,
		},
		{
			name: "unknown method",
			login: `
login:
  method: oauth
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDefinition([]byte(base + tt.login))
			if tt.wantErr {
				if !errors.Is(err, ErrMissingLoginMethod) {
					t.Errorf("error = %v, want missing_login_method", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDefinition failed: %v", err)
			}
			if !def.HasLogin() {
				t.Error("HasLogin = false for a definition with a login block")
			}
		})
	}
}

func TestParseDefinitionShapeNormalization(t *testing.T) {
	doc := `
id: shapes
name: Shapes
description: shape variants
language: en-US
type: semi-private
encoding: UTF-8
links: [https://shapes.example/]
settings:
  - name: freeleech
    type: checkbox
    label: Freeleech only
    default: false
  - name: sort
    type: select
    label: Sort order
    default: 2
    options:
      "1": created
      "2": seeders
caps:
  categorymappings:
    - id: 14
      cat: Movies/HD
      desc: HD Movies
    - id: tv_hd
      cat: TV/HD
  modes:
    search: [q]
    movie-search: [q, imdbid]
search:
  paths:
    - path: /browse
      categories: [14, tv_hd]
    - path: /api/search
      method: post
  rows: table#torrents > tbody > tr
  fields:
    title:
      selector: a[href^="/details"]
      attribute: title
      filters:
        - name: replace
          args: [".", " "]
    size: td:nth-child(5)
    seeders:
      selector: td:nth-child(6)
      filters:
        - name: trim
    category:
      selector: a.cat
      attribute: href
      filters:
        - name: regexp
          args: "cat=(\\d+)"
`

	def, err := ParseDefinition([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}

	// Bare-string selectors normalize to the object form.
	size := def.Search.Fields["size"]
	if size.Selector != "td:nth-child(5)" {
		t.Errorf("bare string selector = %q", size.Selector)
	}

	// Scalar filter args normalize to a one-element list.
	cat := def.Search.Fields["category"]
	if len(cat.Filters) != 1 || len(cat.Filters[0].Args) != 1 {
		t.Fatalf("scalar filter args not normalized: %+v", cat.Filters)
	}
	if cat.Filters[0].Args[0] != `cat=(\d+)` {
		t.Errorf("filter arg = %q", cat.Filters[0].Args[0])
	}

	// List filter args stay a list.
	title := def.Search.Fields["title"]
	if len(title.Filters) != 1 || len(title.Filters[0].Args) != 2 {
		t.Fatalf("list filter args mangled: %+v", title.Filters)
	}

	// Argless filters are allowed.
	seeders := def.Search.Fields["seeders"]
	if len(seeders.Filters) != 1 || seeders.Filters[0].Args != nil {
		t.Errorf("argless filter args = %v, want nil", seeders.Filters[0].Args)
	}

	// Non-string scalars survive as their literal text.
	if got := string(def.Caps.CategoryMappings[0].ID); got != "14" {
		t.Errorf("numeric category id = %q, want 14", got)
	}
	if got := string(def.Caps.CategoryMappings[1].ID); got != "tv_hd" {
		t.Errorf("string category id = %q, want tv_hd", got)
	}

	defaults := def.SettingDefaults()
	if defaults["freeleech"] != "false" {
		t.Errorf("boolean setting default = %q, want false", defaults["freeleech"])
	}
	if defaults["sort"] != "2" {
		t.Errorf("numeric setting default = %q, want 2", defaults["sort"])
	}

	// Path-level shapes.
	if len(def.Search.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(def.Search.Paths))
	}
	if got := string(def.Search.Paths[0].Categories[0]); got != "14" {
		t.Errorf("path category = %q, want 14", got)
	}
	if def.Search.Paths[1].Method != "post" {
		t.Errorf("path method = %q, want post", def.Search.Paths[1].Method)
	}
}

func TestValidateDefinitionAcceptsParsedOutput(t *testing.T) {
	def, err := ParseDefinition([]byte(minimalValidYAML))
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}
	if err := ValidateDefinition(def); err != nil {
		t.Errorf("ValidateDefinition rejected ParseDefinition output: %v", err)
	}
}

func TestDefinitionAccessors(t *testing.T) {
	d := &Definition{}
	if d.GetBaseURL() != "" {
		t.Errorf("GetBaseURL on empty definition = %q", d.GetBaseURL())
	}
	if d.GetPrivacy() != "public" {
		t.Errorf("GetPrivacy default = %q, want public", d.GetPrivacy())
	}
	d.Type = "private"
	if d.GetPrivacy() != "private" {
		t.Errorf("GetPrivacy = %q, want private", d.GetPrivacy())
	}
}
