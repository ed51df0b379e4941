package schema

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// Store supplies schema text by role. Implementations must be safe for
// concurrent use; the validator consults the store on every validation.
type Store interface {
	// LatestStructuralSchema returns the schema for the first validation
	// pass over the raw TAF.
	LatestStructuralSchema() (string, error)
	// LatestEnrichedSchema returns the schema for the second pass over the
	// enriched TAF.
	LatestEnrichedSchema() (string, error)
	// MetaSchema returns the schema that TAF schemas themselves must
	// satisfy once their directives are stripped.
	MetaSchema() (string, error)
}

// Conventional file names inside a schema directory.
const (
	StructuralSchemaFile = "taf.json"
	EnrichedSchemaFile   = "taf-enriched.json"
	MetaSchemaFile       = "metaschema.json"
)

// DirStore reads schemas from a directory, picking up edits on every call.
type DirStore struct {
	dir string
}

// NewDirStore creates a Store over the given schema directory.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) LatestStructuralSchema() (string, error) {
	return s.read(StructuralSchemaFile)
}

func (s *DirStore) LatestEnrichedSchema() (string, error) {
	return s.read(EnrichedSchemaFile)
}

func (s *DirStore) MetaSchema() (string, error) {
	return s.read(MetaSchemaFile)
}

func (s *DirStore) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("read schema %s: %w", name, err)
	}
	return string(data), nil
}

//go:embed schemas/taf.json
var embeddedStructuralSchema string

//go:embed schemas/taf-enriched.json
var embeddedEnrichedSchema string

//go:embed schemas/metaschema.json
var embeddedMetaSchema string

// EmbeddedStore serves the schemas compiled into the binary. It backs the
// CLI and tests, and the service when no schema directory is configured.
type EmbeddedStore struct{}

func (EmbeddedStore) LatestStructuralSchema() (string, error) {
	return embeddedStructuralSchema, nil
}

func (EmbeddedStore) LatestEnrichedSchema() (string, error) {
	return embeddedEnrichedSchema, nil
}

func (EmbeddedStore) MetaSchema() (string, error) {
	return embeddedMetaSchema, nil
}
