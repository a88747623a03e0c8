package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownModel(t *testing.T) {
	err := UnknownModel("llama-7b", []string{"gpt-4o", "claude-3-opus"})

	assert.Equal(t, ErrUnknownModel, err.Code)
	assert.Contains(t, err.Error(), "llama-7b")
	assert.Contains(t, err.Hint, "gpt-4o")
	assert.Contains(t, err.Hint, "claude-3-opus")
}

func TestRulePackInvalid(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := RulePackInvalid("team.yaml", cause)

	assert.Equal(t, ErrRulePackInvalid, err.Code)
	assert.Contains(t, err.Error(), "team.yaml")
	assert.Contains(t, err.Error(), "yaml: line 3")

	unwrapped := err.Unwrap()
	require.NotNil(t, unwrapped)
	assert.Equal(t, cause, unwrapped)
}

func TestGitHubAuthFailed_NilCause(t *testing.T) {
	err := GitHubAuthFailed(nil)

	assert.Equal(t, ErrGitHubAuthFailed, err.Code)
	assert.Contains(t, err.Hint, "gh auth login")
	assert.Nil(t, err.Unwrap())
}

func TestShearError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := &ShearError{
			Code:    ErrInvalidInput,
			Message: "test message",
		}
		assert.Equal(t, "test message", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := &ShearError{
			Code:    ErrInvalidInput,
			Message: "test message",
			Cause:   cause,
		}
		assert.Equal(t, "test message: root cause", err.Error())
	})
}

func TestNew(t *testing.T) {
	err := New(ErrConfigInvalid, "test message", "test hint")

	assert.Equal(t, ErrConfigInvalid, err.Code)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, "test hint", err.Hint)
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrGitHubFetchFailed, "wrapper message", "wrapper hint", cause)

	assert.Equal(t, ErrGitHubFetchFailed, err.Code)
	assert.Equal(t, "wrapper message", err.Message)
	assert.Equal(t, "wrapper hint", err.Hint)
	assert.Equal(t, cause, err.Cause)
}

func TestFromError(t *testing.T) {
	wrapped := Wrap(ErrConfigNotFound, "missing", "", errors.New("stat failed"))

	se, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrConfigNotFound, se.Code)

	_, ok = FromError(errors.New("plain error"))
	assert.False(t, ok)
}
