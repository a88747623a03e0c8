package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cli/go-gh/v2/pkg/api"
)

// Client wraps the GitHub API for promptshear's needs.
type Client struct {
	rest restGetter
}

// restGetter is the slice of go-gh's REST client we use; tests swap in a
// fake.
type restGetter interface {
	Get(path string, response interface{}) error
}

// NewClient creates a GitHub client using go-gh (automatic auth).
func NewClient() (*Client, error) {
	client, err := api.DefaultRESTClient()
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// NewClientWithToken creates a GitHub client with explicit token.
func NewClientWithToken(token string) (*Client, error) {
	client, err := api.NewRESTClient(api.ClientOptions{
		AuthToken: token,
	})
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// NewUnauthenticatedClient creates a GitHub client without authentication.
// This works for public repositories only and has lower rate limits
// (60/hour). Use this when syncing public rule packs without user auth.
func NewUnauthenticatedClient() (*Client, error) {
	client, err := api.NewRESTClient(api.ClientOptions{})
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// fileContentsResponse represents GitHub's contents API response.
type fileContentsResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// FetchFile fetches a file's content from a repo.
func (c *Client) FetchFile(ctx context.Context, owner, repo, path, branch string) (string, error) {
	if owner == "" || repo == "" || path == "" {
		return "", fmt.Errorf("owner, repo, and path are required")
	}

	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, url.PathEscape(path))
	if branch != "" {
		endpoint += "?ref=" + url.QueryEscape(branch)
	}

	var response fileContentsResponse
	if err := c.rest.Get(endpoint, &response); err != nil {
		return "", err
	}

	content, err := base64.StdEncoding.DecodeString(response.Content)
	if err != nil {
		return "", fmt.Errorf("failed to decode content: %w", err)
	}

	return string(content), nil
}

// RepoExists checks if a repository exists and is accessible.
func (c *Client) RepoExists(ctx context.Context, owner, repo string) (bool, error) {
	endpoint := fmt.Sprintf("repos/%s/%s", owner, repo)

	var response struct {
		ID int `json:"id"`
	}

	if err := c.rest.Get(endpoint, &response); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// DirectoryEntry represents an item in a directory listing.
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	SHA  string `json:"sha"`
}

// ListDirectory lists contents of a directory in a repo.
// Returns nil, nil if the directory doesn't exist.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path, branch string) ([]DirectoryEntry, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, url.PathEscape(path))
	if branch != "" {
		endpoint += "?ref=" + url.QueryEscape(branch)
	}

	var response []DirectoryEntry
	if err := c.rest.Get(endpoint, &response); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return response, nil
}

func isNotFound(err error) bool {
	httpErr, ok := err.(*api.HTTPError)
	return ok && httpErr.StatusCode == http.StatusNotFound
}
