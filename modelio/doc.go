// Package modelio reads and writes models and results as YAML documents.
//
// A model file:
//
//	name: knapsack
//	sense: max             # max | maximize | min | minimize
//	objective: [3, 2, 2]
//	vars:                  # optional; one entry per objective coefficient
//	  - {name: a, kind: bin}   # kind: >=0 (default) | <=0 | free | int | bin
//	  - {name: b, kind: bin}
//	  - {name: c, kind: bin}
//	constraints:
//	  - {name: cap, coeffs: [2, 2, 2], rel: "<=", rhs: 3}   # rel: <= | >= | =
//
// JSON is a subset of YAML, so the same files may be written as JSON.
// Unknown keys are rejected. Decoded models are validated with
// model.Model.Validate before they are returned.
package modelio
