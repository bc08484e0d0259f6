package domain

// ContractStatus reports whether a recorded contract has code on chain
type ContractStatus struct {
	Key      string
	Entry    ContractEntry
	Live     bool
	CodeSize int
	Reason   string
}

// VerificationStatus is the outcome of verifying one contract
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationSkipped  VerificationStatus = "skipped"
	VerificationFailed   VerificationStatus = "failed"
)

// VerificationResult is reported per contract key
type VerificationResult struct {
	Key         string
	Address     string
	Status      VerificationStatus
	Message     string
	ExplorerURL string
	Proxy       bool
}
