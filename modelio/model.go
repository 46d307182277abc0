package modelio

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmip/model"
)

// File is the on-disk form of a model.Model.
type File struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Sense       string           `json:"sense" yaml:"sense"`
	Objective   []float64        `json:"objective" yaml:"objective,flow"`
	Vars        []VarSpec        `json:"vars,omitempty" yaml:"vars,omitempty"`
	Constraints []ConstraintSpec `json:"constraints" yaml:"constraints"`
}

// VarSpec names a variable and sets its kind.
type VarSpec struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// ConstraintSpec is one row.
type ConstraintSpec struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Coeffs []float64 `json:"coeffs" yaml:"coeffs,flow"`
	Rel    string    `json:"rel" yaml:"rel"`
	RHS    float64   `json:"rhs" yaml:"rhs"`
}

var senses = map[string]model.Sense{
	"max":      model.Maximize,
	"maximize": model.Maximize,
	"min":      model.Minimize,
	"minimize": model.Minimize,
}

var relations = map[string]model.Relation{
	"<=": model.LessEq,
	"≤":  model.LessEq,
	"le": model.LessEq,
	">=": model.GreaterEq,
	"≥":  model.GreaterEq,
	"ge": model.GreaterEq,
	"=":  model.Equal,
	"==": model.Equal,
	"eq": model.Equal,
}

var kinds = map[string]model.VarKind{
	"":        model.NonNegative,
	">=0":     model.NonNegative,
	"nonneg":  model.NonNegative,
	"<=0":     model.NonPositive,
	"nonpos":  model.NonPositive,
	"free":    model.Free,
	"int":     model.Integer,
	"integer": model.Integer,
	"bin":     model.Binary,
	"binary":  model.Binary,
}

// Decode reads one model document from r.
//
// Errors: ErrSyntax for YAML or schema errors, ErrUnknownSense /
// ErrUnknownRelation / ErrUnknownKind for bad tags, model.ErrMalformedModel
// (or model.ErrEmptyModel) when the decoded model is inconsistent.
func Decode(r io.Reader) (model.Model, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return model.Model{}, &SyntaxError{Err: err}
	}

	return f.Model()
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (model.Model, error) { return Decode(bytes.NewReader(b)) }

// ReadFile decodes the model stored at path.
func ReadFile(path string) (model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Model{}, errors.Wrap(err, "modelio: open model")
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return model.Model{}, errors.Wrap(err, path)
	}

	return m, nil
}

// Model converts f into a validated model.Model.
func (f File) Model() (model.Model, error) {
	var (
		m  model.Model
		ok bool
	)
	if m.Sense, ok = senses[strings.ToLower(strings.TrimSpace(f.Sense))]; !ok {
		return model.Model{}, errors.Wrapf(ErrUnknownSense, "%q", f.Sense)
	}
	m.C = append([]float64(nil), f.Objective...)

	if len(f.Vars) > 0 {
		m.Kinds = make([]model.VarKind, len(f.Vars))
		m.Names = make([]string, len(f.Vars))
		for j, v := range f.Vars {
			if m.Kinds[j], ok = kinds[strings.ToLower(strings.TrimSpace(v.Kind))]; !ok {
				return model.Model{}, errors.Wrapf(ErrUnknownKind, "var %d: %q", j+1, v.Kind)
			}
			m.Names[j] = v.Name
		}
	}

	named := false
	for i, c := range f.Constraints {
		rel, ok := relations[strings.TrimSpace(c.Rel)]
		if !ok {
			return model.Model{}, errors.Wrapf(ErrUnknownRelation, "constraint %d: %q", i+1, c.Rel)
		}
		m.A = append(m.A, append([]float64(nil), c.Coeffs...))
		m.Relations = append(m.Relations, rel)
		m.B = append(m.B, c.RHS)
		named = named || c.Name != ""
	}
	if named {
		m.RowNames = make([]string, len(f.Constraints))
		for i, c := range f.Constraints {
			m.RowNames[i] = c.Name
		}
	}

	if err := m.Validate(); err != nil {
		return model.Model{}, errors.Wrap(err, "modelio")
	}

	return m, nil
}

// FromModel returns the on-disk form of m.
func FromModel(name string, m model.Model) File {
	f := File{
		Name:      name,
		Sense:     m.Sense.String(),
		Objective: append([]float64(nil), m.C...),
	}
	if m.Kinds != nil || m.Names != nil {
		f.Vars = make([]VarSpec, m.NumVars())
		for j := range f.Vars {
			f.Vars[j] = VarSpec{Kind: kindName(m.Kind(j))}
			if j < len(m.Names) {
				f.Vars[j].Name = m.Names[j]
			}
		}
	}
	for i, row := range m.A {
		c := ConstraintSpec{
			Coeffs: append([]float64(nil), row...),
			Rel:    m.Relations[i].String(),
			RHS:    m.B[i],
		}
		if i < len(m.RowNames) {
			c.Name = m.RowNames[i]
		}
		f.Constraints = append(f.Constraints, c)
	}

	return f
}

// kindName returns the file spelling of k; the default kind is omitted.
func kindName(k model.VarKind) string {
	if k == model.NonNegative {
		return ""
	}

	return k.String()
}

// Encode writes m as a YAML document.
func Encode(w io.Writer, name string, m model.Model) error {
	return encode(w, FromModel(name, m))
}

func encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "modelio: encode")
	}

	return errors.Wrap(enc.Close(), "modelio: encode")
}
