package prompts

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in prompt set.
func Default() Set {
	var s Set
	if err := yaml.Unmarshal(defaultYAML, &s); err != nil {
		// default.yaml is compiled in; a failure here is a build defect.
		panic(fmt.Sprintf("invalid embedded prompt set: %v", err))
	}
	return s
}

// Loader reads a prompt override file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath. An empty path means "defaults only".
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the override file path, possibly empty.
func (l *Loader) Path() string { return l.filePath }

// Load parses the override file and fills the fields it leaves out from
// the built-in set.
func (l *Loader) Load() (Set, error) {
	def := Default()
	if l.filePath == "" {
		return def, nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read prompt file: %w", err)
	}

	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Set{}, fmt.Errorf("failed to parse prompt yaml: %w", err)
	}

	return override.merge(def), nil
}
