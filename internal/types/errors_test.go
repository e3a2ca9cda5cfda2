package types

import (
	"errors"
	"testing"
)

func TestProviderError(t *testing.T) {
	baseErr := errors.New("connection refused")
	provErr := NewProviderError(ProviderOpenAI, baseErr)

	// Test Error() string
	expectedMsg := "error generating SQL with openai: connection refused"
	if provErr.Error() != expectedMsg {
		t.Errorf("expected error message %q, got %q", expectedMsg, provErr.Error())
	}

	// Test Unwrap()
	unwrapped := errors.Unwrap(provErr)
	if unwrapped != baseErr {
		t.Errorf("expected unwrapped error to be %v, got %v", baseErr, unwrapped)
	}

	// Test errors.As
	var target *ProviderError
	if !errors.As(provErr, &target) {
		t.Error("expected errors.As to match ProviderError")
	}
	if target.Provider != ProviderOpenAI {
		t.Errorf("expected provider %q, got %q", ProviderOpenAI, target.Provider)
	}

	// Test errors.Is (semantics check via Unwrap)
	if !errors.Is(provErr, baseErr) {
		t.Error("expected errors.Is to match base error")
	}
}

func TestCredentialError(t *testing.T) {
	err := NewCredentialError(ProviderAnthropic, "AWS_ACCESS_KEY_ID/AWS_ACCESS_KEY and AWS_SECRET_ACCESS_KEY")

	var target *CredentialError
	if !errors.As(err, &target) {
		t.Fatal("expected errors.As to match CredentialError")
	}

	if target.Provider != ProviderAnthropic {
		t.Errorf("expected provider %q, got %q", ProviderAnthropic, target.Provider)
	}

	want := "anthropic credentials not set (AWS_ACCESS_KEY_ID/AWS_ACCESS_KEY and AWS_SECRET_ACCESS_KEY)"
	if err.Error() != want {
		t.Errorf("expected error message %q, got %q", want, err.Error())
	}
}

func TestProviderError_WrapsCredentialError(t *testing.T) {
	credErr := NewCredentialError(ProviderOpenAI, "OPENAI_API_KEY")
	provErr := NewProviderError(ProviderOpenAI, credErr)

	var target *CredentialError
	if !errors.As(provErr, &target) {
		t.Error("expected errors.As to find CredentialError through ProviderError")
	}
}
