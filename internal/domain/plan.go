package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Plan is a multi-task deployment described in YAML
type Plan struct {
	Env     string     `yaml:"env"`
	Version string     `yaml:"ver"`
	Steps   []PlanStep `yaml:"steps"`
}

// PlanStep runs one deploy task
type PlanStep struct {
	ID        string            `yaml:"id"`
	Task      string            `yaml:"task"`
	Params    map[string]string `yaml:"params"`
	DependsOn []string          `yaml:"depends_on"`
}

// StepOutputs maps step id to contract name to deployed address
type StepOutputs map[string]map[string]string

var planRefPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_-]+)\.([A-Za-z0-9_]+)\}`)

// References returns the step ids a step's params point at
func (s PlanStep) References() []string {
	seen := map[string]bool{}
	var refs []string
	for _, v := range s.Params {
		for _, m := range planRefPattern.FindAllStringSubmatch(v, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				refs = append(refs, m[1])
			}
		}
	}
	sort.Strings(refs)
	return refs
}

// PlanRef is one ${step.Contract} reference in a step's params
type PlanRef struct {
	Step     string
	Contract string
}

// ContractRefs returns every distinct reference in the step's params
func (s PlanStep) ContractRefs() []PlanRef {
	seen := map[PlanRef]bool{}
	var refs []PlanRef
	for _, v := range s.Params {
		for _, m := range planRefPattern.FindAllStringSubmatch(v, -1) {
			ref := PlanRef{Step: m[1], Contract: m[2]}
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Step != refs[j].Step {
			return refs[i].Step < refs[j].Step
		}
		return refs[i].Contract < refs[j].Contract
	})
	return refs
}

// Dependencies is the union of depends_on and param references
func (s PlanStep) Dependencies() []string {
	seen := map[string]bool{}
	var deps []string
	for _, d := range append(append([]string{}, s.DependsOn...), s.References()...) {
		if !seen[d] {
			seen[d] = true
			deps = append(deps, d)
		}
	}
	return deps
}

// Order returns the steps in dependency order. Steps without a mutual
// ordering keep their file order.
func (p *Plan) Order() ([]PlanStep, error) {
	index := make(map[string]int, len(p.Steps))
	for i, s := range p.Steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d: missing id", i+1)
		}
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate step id %q", s.ID)
		}
		index[s.ID] = i
	}

	indegree := make([]int, len(p.Steps))
	dependents := make([][]int, len(p.Steps))
	for i, s := range p.Steps {
		for _, dep := range s.Dependencies() {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("step %q depends on unknown step %q", s.ID, dep)
			}
			if j == i {
				return nil, fmt.Errorf("step %q depends on itself", s.ID)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var ready []int
	for i := range p.Steps {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	ordered := make([]PlanStep, 0, len(p.Steps))
	for len(ready) > 0 {
		sort.Ints(ready)
		i := ready[0]
		ready = ready[1:]
		ordered = append(ordered, p.Steps[i])
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(ordered) != len(p.Steps) {
		var cyclic []string
		for i, s := range p.Steps {
			if indegree[i] > 0 {
				cyclic = append(cyclic, s.ID)
			}
		}
		return nil, fmt.Errorf("dependency cycle between steps: %s", strings.Join(cyclic, ", "))
	}
	return ordered, nil
}

// ResolveParams substitutes ${step.Contract} references with addresses
func (s PlanStep) ResolveParams(outputs StepOutputs) (map[string]string, error) {
	resolved := make(map[string]string, len(s.Params))
	for k, v := range s.Params {
		var missing error
		resolved[k] = planRefPattern.ReplaceAllStringFunc(v, func(ref string) string {
			m := planRefPattern.FindStringSubmatch(ref)
			addr, ok := outputs[m[1]][m[2]]
			if !ok {
				missing = fmt.Errorf("step %q: unresolved reference %s", s.ID, ref)
				return ref
			}
			return addr
		})
		if missing != nil {
			return nil, missing
		}
	}
	return resolved, nil
}
