package domain

// Deployment is a mined contract creation
type Deployment struct {
	Address string
	TxHash  string
	Block   uint64
	GasUsed uint64
}

// ProxyDeployment is an implementation behind an ERC1967 proxy
type ProxyDeployment struct {
	Proxy          Deployment
	Implementation Deployment
	InitData       string
}

// TxReceipt is a mined contract call
type TxReceipt struct {
	TxHash  string
	Block   uint64
	GasUsed uint64
}

// AccountInfo describes a configured signer on a network
type AccountInfo struct {
	Address string
	Balance string // wei
	Nonce   uint64
}

// SourceVerification is what a block explorer needs to verify a contract
type SourceVerification struct {
	Address         string
	ContractName    string // "<source>:<name>"
	CompilerVersion string // "v0.8.19+commit.7dd6d404"
	StandardJSON    []byte
	ConstructorArgs string // hex without 0x
}
