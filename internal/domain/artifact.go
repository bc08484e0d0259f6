package domain

import "encoding/json"

// Artifact is a compiled Hardhat contract artifact
type Artifact struct {
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`

	// Path is the artifact file on disk
	Path string `json:"-"`
}

// FullyQualifiedName returns "<source>:<name>"
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// IsDeployable reports whether the artifact carries creation bytecode
func (a *Artifact) IsDeployable() bool {
	return a.Bytecode != "" && a.Bytecode != "0x"
}

// BuildInfo is the compiler input that produced an artifact
type BuildInfo struct {
	ID              string          `json:"id"`
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}
