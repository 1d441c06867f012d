package scene

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v2"
)

// ErrTemplateNotFound is returned when a material template name is not
// registered in a Library.
var ErrTemplateNotFound = errors.New("material template not found")

// InstanceSuffix is appended to the name of every instantiated material.
const InstanceSuffix = " (Instance)"

// Library holds named material templates.
type Library struct {
	templates map[string]*Material
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{templates: make(map[string]*Material)}
}

// Register adds or replaces a template under its name.
func (l *Library) Register(tmpl *Material) {
	l.templates[tmpl.Name] = tmpl
}

// Names returns the registered template names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns the shared template registered under name.
func (l *Library) Template(name string) (*Material, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// Instantiate returns a deep copy of the named template, owned by the
// caller and named "<name> (Instance)".
func (l *Library) Instantiate(name string) (*Material, error) {
	tmpl, err := l.Template(name)
	if err != nil {
		return nil, err
	}
	inst := &Material{}
	if err := copier.CopyWithOption(inst, tmpl, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to instantiate material %s: %w", name, err)
	}
	if inst.Floats == nil {
		inst.Floats = make(map[string]float32)
	}
	if inst.Vectors == nil {
		inst.Vectors = make(map[string]mgl32.Vec4)
	}
	inst.Name = name + InstanceSuffix
	return inst, nil
}

// templateFile is the YAML layout of a material library file.
type templateFile struct {
	Materials []struct {
		Name    string               `yaml:"name"`
		Kind    string               `yaml:"kind"`
		Shader  string               `yaml:"shader"`
		Floats  map[string]float32   `yaml:"floats"`
		Vectors map[string][]float32 `yaml:"vectors"`
	} `yaml:"materials"`
}

// LoadInto reads a YAML template file and registers every template it
// declares into l, replacing templates with the same name.
func (l *Library) LoadInto(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read material library: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing material library %s: %w", filePath, err)
	}

	for _, entry := range file.Materials {
		if entry.Name == "" {
			return fmt.Errorf("material library %s: template without a name", filePath)
		}
		kind, err := ParseMaterialKind(entry.Kind)
		if err != nil {
			return fmt.Errorf("material %s: %w", entry.Name, err)
		}
		tmpl := NewMaterial(entry.Name, kind, entry.Shader)
		for k, v := range entry.Floats {
			tmpl.SetFloat(k, v)
		}
		for k, v := range entry.Vectors {
			if len(v) == 0 || len(v) > 4 {
				return fmt.Errorf("material %s: vector %s must have 1 to 4 components", entry.Name, k)
			}
			var vec mgl32.Vec4
			copy(vec[:], v)
			tmpl.SetVector(k, vec)
		}
		l.Register(tmpl)
	}
	return nil
}

// LoadLibrary reads a YAML template file into a new library.
func LoadLibrary(filePath string) (*Library, error) {
	l := NewLibrary()
	if err := l.LoadInto(filePath); err != nil {
		return nil, err
	}
	return l, nil
}
