// Package errors provides typed errors for promptshear.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrUnknownModel      ErrorCode = "UNKNOWN_MODEL"
	ErrInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrRulePackInvalid   ErrorCode = "RULEPACK_INVALID"
	ErrGitHubAuthFailed  ErrorCode = "GITHUB_AUTH_FAILED"
	ErrGitHubFetchFailed ErrorCode = "GITHUB_FETCH_FAILED"
)

// ShearError represents a typed error with user-friendly hints.
type ShearError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *ShearError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ShearError) Unwrap() error {
	return e.Cause
}

// FromError extracts a ShearError from err's chain, if present.
func FromError(err error) (*ShearError, bool) {
	var se *ShearError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// New creates a new ShearError.
func New(code ErrorCode, message, hint string) *ShearError {
	return &ShearError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new ShearError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *ShearError {
	return &ShearError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigNotFound returns an error for a missing config file.
func ConfigNotFound(path string) *ShearError {
	return &ShearError{
		Code:    ErrConfigNotFound,
		Message: fmt.Sprintf("config file not found: %s", path),
		Hint:    "Run `promptshear init` to create a configuration",
	}
}

// ConfigInvalid returns an error for invalid config.
func ConfigInvalid(reason string) *ShearError {
	return &ShearError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check your config file at ~/.config/promptshear/config.yaml",
	}
}

// UnknownModel returns an error for an unrecognized model name.
func UnknownModel(name string, supported []string) *ShearError {
	return &ShearError{
		Code:    ErrUnknownModel,
		Message: fmt.Sprintf("unknown model: %s", name),
		Hint:    fmt.Sprintf("Supported models: %s", strings.Join(supported, ", ")),
	}
}

// InvalidInput returns an error for unusable prompt input.
func InvalidInput(reason string) *ShearError {
	return &ShearError{
		Code:    ErrInvalidInput,
		Message: fmt.Sprintf("invalid input: %s", reason),
		Hint:    "Provide prompt text as an argument, with -f <file>, or on stdin",
	}
}

// RulePackInvalid returns an error for a rule pack that failed to parse.
func RulePackInvalid(name string, cause error) *ShearError {
	return &ShearError{
		Code:    ErrRulePackInvalid,
		Message: fmt.Sprintf("invalid rule pack: %s", name),
		Hint:    "Rule packs are YAML files with a name, category, and a rules list",
		Cause:   cause,
	}
}

// GitHubAuthFailed returns an error for authentication failures.
func GitHubAuthFailed(cause error) *ShearError {
	return &ShearError{
		Code:    ErrGitHubAuthFailed,
		Message: "GitHub authentication failed",
		Hint:    "Run `gh auth login` or set PROMPTSHEAR_GITHUB_TOKEN",
		Cause:   cause,
	}
}

// GitHubFetchFailed returns an error for rule pack fetch failures.
func GitHubFetchFailed(repo string, cause error) *ShearError {
	return &ShearError{
		Code:    ErrGitHubFetchFailed,
		Message: fmt.Sprintf("failed to fetch rule packs from %s", repo),
		Hint:    "Check that the repository exists and you have access",
		Cause:   cause,
	}
}
