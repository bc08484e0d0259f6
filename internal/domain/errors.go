package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownNetwork is returned when a network is neither a preset nor configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrUnknownTask is returned when a deploy task name is not registered
	ErrUnknownTask = errors.New("unknown task")

	// ErrMissingParam is wrapped by MissingParamsErr
	ErrMissingParam = errors.New("missing required parameter")

	// ErrArtifactNotFound is returned when no compiled artifact matches a name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrAlreadyVerified is returned by explorers for already verified sources
	ErrAlreadyVerified = errors.New("already verified")

	// ErrNoSigner is returned when the network has no usable account
	ErrNoSigner = errors.New("no signer configured")

	// ErrChainIDMismatch is returned when the RPC reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// MissingParamsErr lists every required task parameter that was not supplied.
type MissingParamsErr struct {
	Task   string
	Params []string
}

func (e MissingParamsErr) Error() string {
	return fmt.Sprintf("task %s: missing required parameters: %s", e.Task, strings.Join(e.Params, ", "))
}

func (e MissingParamsErr) Unwrap() error {
	return ErrMissingParam
}

type AmbiguousArtifactErr struct {
	Name  string
	Paths []string
}

func (e AmbiguousArtifactErr) Error() string {
	paths := make([]string, len(e.Paths))
	copy(paths, e.Paths)
	sort.Strings(paths)

	var suggestions []string
	for _, p := range paths {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", p, e.Name))
	}

	return fmt.Sprintf("multiple artifacts found matching %s - use source:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
