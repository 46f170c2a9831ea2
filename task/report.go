// SPDX-License-Identifier: MIT

package task

import (
	"github.com/lh7326/UA-model-sub000/parameters"
)

// Report is the serializable record of a task.
type Report struct {
	Name        string                 `yaml:"name" json:"name"`
	Kind        string                 `yaml:"kind" json:"kind"`
	ChiSquared  *float64               `yaml:"chi_squared" json:"chi_squared"`
	Points      int                    `yaml:"points" json:"points"`
	Free        []string               `yaml:"free" json:"free"`
	Parameters  []parameters.Parameter `yaml:"parameters" json:"parameters"`
	Covariance  [][]float64            `yaml:"covariance,omitempty" json:"covariance,omitempty"`
	Errors      map[string]float64     `yaml:"errors,omitempty" json:"errors,omitempty"`
	Evaluations int                    `yaml:"evaluations,omitempty" json:"evaluations,omitempty"`
	Status      string                 `yaml:"status,omitempty" json:"status,omitempty"`
	Error       string                 `yaml:"error,omitempty" json:"error,omitempty"`
}

// Report returns a snapshot of the task; slices and maps are copies.
func (t *Task[P]) Report() Report {
	r := Report{
		Name:       t.name,
		Kind:       t.Kind().String(),
		Points:     t.data.Len(),
		Free:       append([]string(nil), t.free...),
		Parameters: t.params.ToList(),
		Error:      t.message,
	}
	if r.Free == nil {
		r.Free = t.params.FreeNames()
	}
	if t.chiSquared != nil {
		chi2 := *t.chiSquared
		r.ChiSquared = &chi2
	}
	if t.covariance != nil {
		r.Covariance = make([][]float64, len(t.covariance))
		for i, row := range t.covariance {
			r.Covariance[i] = append([]float64(nil), row...)
		}
	}
	if t.errors != nil {
		r.Errors = make(map[string]float64, len(t.errors))
		for k, v := range t.errors {
			r.Errors[k] = v
		}
	}
	if t.result != nil {
		r.Evaluations = t.result.Evaluations
		r.Status = t.result.Status.String()
	}

	return r
}
