package types

import "fmt"

// CredentialError indicates that the environment variables required to build
// a provider client are absent. The selection is made once per request, so a
// CredentialError never triggers a fallback to the other provider.
type CredentialError struct {
	Provider string
	Missing  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credentials not set (%s)", e.Provider, e.Missing)
}

// NewCredentialError reports a missing credential set for the named provider.
func NewCredentialError(provider, missing string) error {
	return &CredentialError{Provider: provider, Missing: missing}
}

// ProviderError wraps any failure raised by client construction or the
// network call, identifying which provider failed.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("error generating SQL with %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps an existing error with the failing provider's name.
func NewProviderError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}
