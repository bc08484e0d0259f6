package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads plan files
type YAMLLoader struct{}

// NewYAMLLoader creates a new plan loader
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load parses a plan file. Unknown keys are rejected so typos in step
// fields surface before anything is deployed.
func (l *YAMLLoader) Load(path string) (*domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan domain.Plan
	if err := dec.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("plan %s is empty", path)
		}
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("plan %s has no steps", path)
	}
	return &plan, nil
}

var _ usecase.PlanLoader = (*YAMLLoader)(nil)
