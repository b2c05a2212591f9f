package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/biograph-ai/biograph/internal/types"
)

// LLM error codes
const (
	ErrProviderNotFound     types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	ErrInvalidRequest       types.ErrorCode = "LLM_INVALID_REQUEST"
	ErrCompletionFailed     types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrResponseParseFailed  types.ErrorCode = "LLM_RESPONSE_PARSE_FAILED"
	ErrContextCanceled      types.ErrorCode = "LLM_CONTEXT_CANCELED"
)

// NewAuthError creates an authentication error for a provider.
func NewAuthError(provider string, cause error) error {
	return types.WrapError(ErrProviderUnauthorized,
		fmt.Sprintf("missing or invalid credentials for provider %q", provider), cause)
}

// TranslateError converts an underlying client error into a coded error.
// Rate limits are marked retryable; everything else is surfaced as a
// completion failure with the provider name attached.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(ErrContextCanceled,
			fmt.Sprintf("provider %s call canceled", provider), err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid api key") || strings.Contains(msg, "authentication"):
		return NewAuthError(provider, err)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		e := types.NewRetryableError(ErrProviderRateLimited,
			fmt.Sprintf("provider %s rate limited", provider))
		e.Cause = err
		return e
	default:
		return types.WrapError(ErrCompletionFailed,
			fmt.Sprintf("provider %s completion failed", provider), err)
	}
}
