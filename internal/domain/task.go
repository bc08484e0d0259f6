package domain

import (
	"sort"
	"strings"
)

// TaskParam describes one input of a deploy task
type TaskParam struct {
	Name     string
	Usage    string
	Required bool
	Default  string
	// Env is consulted when the flag is not given
	Env string
}

// TaskSpec is the static description of a deploy task
type TaskSpec struct {
	Name        string
	Description string
	Example     string
	Params      []TaskParam
	Contracts   []string
	Upgradeable bool
}

// Param looks up a parameter by name
func (t TaskSpec) Param(name string) (TaskParam, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return TaskParam{}, false
}

// ResolveParams applies env fallbacks and defaults and reports every missing
// required parameter at once.
func (t TaskSpec) ResolveParams(given map[string]string, getenv func(string) string) (TaskValues, error) {
	values := make(TaskValues, len(t.Params))
	var missing []string

	for _, p := range t.Params {
		v, ok := given[p.Name]
		if !ok && p.Env != "" && getenv != nil {
			if ev := getenv(p.Env); ev != "" {
				v, ok = ev, true
			}
		}
		if !ok && p.Default != "" {
			v, ok = p.Default, true
		}
		if !ok && p.Required {
			missing = append(missing, p.Name)
			continue
		}
		values[p.Name] = v
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, MissingParamsErr{Task: t.Name, Params: missing}
	}
	return values, nil
}

// TaskValues are resolved task parameters
type TaskValues map[string]string

func (v TaskValues) Get(name string) string {
	return v[name]
}

// Fields splits a space separated parameter, dropping empty parts
func (v TaskValues) Fields(name string) []string {
	return strings.Fields(v[name])
}

// DeployedContract is the outcome of one contract deployed by a task
type DeployedContract struct {
	Contract string
	Name     string
	Address  string
	TxHash   string
	Block    uint64
	Verify   VerifyEntry
}

// TaskResult collects everything a task run produced
type TaskResult struct {
	Task      string
	Env       string
	Network   NetworkInfo
	Version   string
	Contracts []DeployedContract
}
