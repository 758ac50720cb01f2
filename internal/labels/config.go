package labels

import "github.com/pkg/errors"

// Definition is the config-file shape of a project's tables.
type Definition struct {
	Name       string   `mapstructure:"name"`
	Types      []string `mapstructure:"types"`
	Codes      []string `mapstructure:"codes"`
	Details    []string `mapstructure:"details"`
	StateCodes []string `mapstructure:"state_codes"`
}

// Tables converts a definition. Labels are kept verbatim.
func (d Definition) Tables() *Tables {
	return &Tables{
		Project:    d.Name,
		Types:      LabelSet(d.Types),
		Codes:      LabelSet(d.Codes),
		Details:    LabelSet(d.Details),
		StateCodes: LabelSet(d.StateCodes),
	}
}

// RegisterAll registers every definition, stopping at the first failure.
func (r *Registry) RegisterAll(defs []Definition) error {
	for i, d := range defs {
		if err := r.Register(d.Tables()); err != nil {
			return errors.Wrapf(err, "projects[%d]", i)
		}
	}
	return nil
}
