// Package github fetches shared rule packs from GitHub repositories.
package github

import (
	"os"
	"os/exec"
	"strings"

	"github.com/promptshear/promptshear/internal/errors"
)

const (
	// EnvGitHubToken is the environment variable for fallback token auth.
	EnvGitHubToken = "PROMPTSHEAR_GITHUB_TOKEN"
)

// GetToken resolves a GitHub token using the auth chain.
// Priority: 1) gh auth token, 2) PROMPTSHEAR_GITHUB_TOKEN env
func GetToken() (string, error) {
	token, err := GetTokenFromGHCLI()
	if err == nil && token != "" {
		return token, nil
	}

	token = GetTokenFromEnv()
	if token != "" {
		return token, nil
	}

	return "", errors.GitHubAuthFailed(err)
}

// GetTokenFromGHCLI executes `gh auth token` to get token.
func GetTokenFromGHCLI() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// GetTokenFromEnv reads PROMPTSHEAR_GITHUB_TOKEN.
func GetTokenFromEnv() string {
	return os.Getenv(EnvGitHubToken)
}

// AuthMethod returns a string describing the current auth method.
func AuthMethod() string {
	if _, err := GetTokenFromGHCLI(); err == nil {
		return "gh CLI"
	}
	if GetTokenFromEnv() != "" {
		return EnvGitHubToken
	}
	return "none"
}
