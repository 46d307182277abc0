package modelio

import (
	"io"

	"github.com/katalvlaran/lvmip/model"
)

// ResultFile is the YAML report of one solve.
type ResultFile struct {
	Model         string       `json:"model,omitempty" yaml:"model,omitempty"`
	RunID         string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Method        string       `json:"method,omitempty" yaml:"method,omitempty"`
	Status        string       `json:"status" yaml:"status"`
	Kind          string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error         string       `json:"error,omitempty" yaml:"error,omitempty"`
	Objective     *float64     `json:"objective,omitempty" yaml:"objective,omitempty"`
	RootObjective *float64     `json:"root_objective,omitempty" yaml:"root_objective,omitempty"`
	Values        []NamedValue `json:"values,omitempty" yaml:"values,omitempty"`
	Duals         []NamedValue `json:"duals,omitempty" yaml:"duals,omitempty"`
	Iterations    int          `json:"iterations" yaml:"iterations"`
	Nodes         int          `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	LogPath       string       `json:"log_path,omitempty" yaml:"log_path,omitempty"`
	Warnings      []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NamedValue pairs a variable or row name with a number.
type NamedValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Report builds the ResultFile of res for model m. solveErr, when non-nil,
// is recorded as text; Kind is omitted for clean verdicts.
func Report(name, method string, m model.Model, res model.Result, solveErr error) ResultFile {
	out := ResultFile{
		Model:      name,
		RunID:      res.RunID,
		Method:     method,
		Status:     res.Status.String(),
		Iterations: res.Iterations,
		Nodes:      res.Nodes,
		LogPath:    res.LogPath,
		Warnings:   res.Warnings,
	}
	if res.Kind != model.KindNone {
		out.Kind = res.Kind.String()
	}
	if solveErr != nil {
		out.Error = solveErr.Error()
	}
	if res.HasSolution() {
		obj := res.Objective
		out.Objective = &obj
		for j, v := range res.X {
			out.Values = append(out.Values, NamedValue{Name: m.VarName(j), Value: v})
		}
		for i, y := range res.Duals {
			out.Duals = append(out.Duals, NamedValue{Name: m.RowName(i), Value: y})
		}
	}
	if res.Nodes > 0 || res.RootObjective != 0 {
		root := res.RootObjective
		out.RootObjective = &root
	}

	return out
}

// EncodeResult writes r as a YAML document.
func EncodeResult(w io.Writer, r ResultFile) error { return encode(w, r) }
