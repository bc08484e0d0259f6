package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepIDs(steps []PlanStep) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}

func TestPlanOrder(t *testing.T) {
	tests := []struct {
		name    string
		steps   []PlanStep
		want    []string
		wantErr string
	}{
		{
			name: "references pull dependencies forward",
			steps: []PlanStep{
				{ID: "auction", Task: "deploy-auction", Params: map[string]string{"multicall": "${mc.Multicall}"}},
				{ID: "mc", Task: "deploy-multicall"},
			},
			want: []string{"mc", "auction"},
		},
		{
			name: "independent steps keep file order",
			steps: []PlanStep{
				{ID: "a", Task: "deploy-multicall"},
				{ID: "b", Task: "deploy-erc20"},
				{ID: "c", Task: "deploy-collections", DependsOn: []string{"a"}},
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "cycle",
			steps: []PlanStep{
				{ID: "a", DependsOn: []string{"b"}},
				{ID: "b", Params: map[string]string{"x": "${a.Foo}"}},
			},
			wantErr: "dependency cycle between steps: a, b",
		},
		{
			name:    "unknown reference",
			steps:   []PlanStep{{ID: "a", Params: map[string]string{"x": "${ghost.Multicall}"}}},
			wantErr: `step "a" depends on unknown step "ghost"`,
		},
		{
			name:    "duplicate id",
			steps:   []PlanStep{{ID: "a"}, {ID: "a"}},
			wantErr: `duplicate step id "a"`,
		},
		{
			name:    "self reference",
			steps:   []PlanStep{{ID: "a", DependsOn: []string{"a"}}},
			wantErr: `step "a" depends on itself`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Plan{Steps: tt.steps}
			got, err := p.Order()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stepIDs(got))
		})
	}
}

func TestPlanStepResolveParams(t *testing.T) {
	step := PlanStep{
		ID: "market",
		Params: map[string]string{
			"multicall": "${mc.Multicall}",
			"whitelist": "${erc20.TestToken20} 0x0000000000000000000000000000000000000001",
			"name":      "Marketplace",
		},
	}
	outputs := StepOutputs{
		"mc":    {"Multicall": "0xAbC0000000000000000000000000000000000001"},
		"erc20": {"TestToken20": "0xAbC0000000000000000000000000000000000002"},
	}

	got, err := step.ResolveParams(outputs)
	require.NoError(t, err)
	assert.Equal(t, "0xAbC0000000000000000000000000000000000001", got["multicall"])
	assert.Equal(t, "0xAbC0000000000000000000000000000000000002 0x0000000000000000000000000000000000000001", got["whitelist"])
	assert.Equal(t, "Marketplace", got["name"])

	_, err = PlanStep{ID: "x", Params: map[string]string{"a": "${mc.Auction}"}}.ResolveParams(outputs)
	assert.EqualError(t, err, `step "x": unresolved reference ${mc.Auction}`)
}

func TestPlanStepContractRefs(t *testing.T) {
	step := PlanStep{ID: "market", Params: map[string]string{
		"multicall": "${mc.Multicall}",
		"whitelist": "${token.TestToken20} ${mc.Multicall} ${erc.ERC721PresetMintableURI}",
	}}
	assert.Equal(t, []PlanRef{
		{Step: "erc", Contract: "ERC721PresetMintableURI"},
		{Step: "mc", Contract: "Multicall"},
		{Step: "token", Contract: "TestToken20"},
	}, step.ContractRefs())
	assert.Empty(t, PlanStep{ID: "mc"}.ContractRefs())
}
