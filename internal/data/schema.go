package data

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/samber/oops"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBase = "https://townsfolk.local/schemas/"

var (
	schemaOnce sync.Once
	schemaErr  error
	schemas    map[string]*jsonschema.Schema
)

// compileSchemas registers every embedded schema with one compiler so that
// cross-file $refs resolve, then compiles them all.
func compileSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		names, err := fs.Glob(schemaFS, "schemas/*.schema.json")
		if err != nil {
			schemaErr = err
			return
		}
		for _, n := range names {
			raw, err := schemaFS.ReadFile(n)
			if err != nil {
				schemaErr = err
				return
			}
			if err := c.AddResource(schemaBase+path.Base(n), bytes.NewReader(raw)); err != nil {
				schemaErr = oops.In("catalog").With("schema", n).Wrapf(err, "add schema")
				return
			}
		}
		out := make(map[string]*jsonschema.Schema, len(names))
		for _, n := range names {
			s, err := c.Compile(schemaBase + path.Base(n))
			if err != nil {
				schemaErr = oops.In("catalog").With("schema", n).Wrapf(err, "compile schema")
				return
			}
			out[strings.TrimSuffix(path.Base(n), ".schema.json")] = s
		}
		schemas = out
	})
	return schemas, schemaErr
}

// decodeDoc validates a YAML document against the named schema and decodes
// it into out. The YAML is first lowered to plain JSON values, which is what
// the validator understands.
func decodeDoc(raw []byte, schema string, out any) error {
	ss, err := compileSchemas()
	if err != nil {
		return err
	}
	s, ok := ss[schema]
	if !ok {
		return oops.In("catalog").Errorf("no schema named %q", schema)
	}

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return oops.In("catalog").With("schema", schema).Wrapf(err, "parse yaml")
	}
	js, err := json.Marshal(generic)
	if err != nil {
		return oops.In("catalog").With("schema", schema).Wrapf(err, "lower yaml to json")
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return oops.In("catalog").With("schema", schema).Wrapf(err, "reparse json")
	}
	if err := s.Validate(doc); err != nil {
		return oops.In("catalog").With("schema", schema).Wrapf(err, "validate")
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return oops.In("catalog").With("schema", schema).Wrapf(err, "decode")
	}
	return nil
}
