package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptshear/promptshear/internal/errors"
)

// fakeREST serves canned responses by endpoint prefix.
type fakeREST struct {
	responses map[string]interface{}
}

func (f *fakeREST) Get(path string, response interface{}) error {
	canned, ok := f.responses[path]
	if !ok {
		return fmt.Errorf("unexpected endpoint: %s", path)
	}
	data, err := json.Marshal(canned)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, response)
}

func contentsResponse(name, content string) fileContentsResponse {
	return fileContentsResponse{
		Type:    "file",
		Name:    name,
		Path:    RulesDir + "/" + name,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

const validPack = `name: team-abbreviations
description: Team-specific abbreviations
category: abbreviation
rules:
  - find: kubernetes
    replace: k8s
    whole_word: true
`

const invalidPack = `name: broken
category: abbreviation
rules:
  - find: "("
    replace: x
    pattern: true
`

func newSyncClient() *Client {
	return &Client{rest: &fakeREST{responses: map[string]interface{}{
		"repos/acme/prompt-rules/contents/rules": []DirectoryEntry{
			{Name: "team.yaml", Path: "rules/team.yaml", Type: "file"},
			{Name: "broken.yml", Path: "rules/broken.yml", Type: "file"},
			{Name: "README.md", Path: "rules/README.md", Type: "file"},
			{Name: "archive", Path: "rules/archive", Type: "dir"},
		},
		"repos/acme/prompt-rules/contents/rules%2Fteam.yaml":  contentsResponse("team.yaml", validPack),
		"repos/acme/prompt-rules/contents/rules%2Fbroken.yml": contentsResponse("broken.yml", invalidPack),
	}}}
}

func TestSyncRules(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "rules")

	results, err := SyncRules(context.Background(), newSyncClient(), "acme/prompt-rules", dest)
	require.NoError(t, err)
	require.Len(t, results, 2, "non-YAML entries and directories are ignored")

	// Sorted by file name: broken.yml before team.yaml.
	assert.True(t, results[0].Skipped)
	assert.Equal(t, "broken.yml", results[0].FileName)
	assert.NotEmpty(t, results[0].Reason)

	assert.False(t, results[1].Skipped)
	assert.Equal(t, "team-abbreviations", results[1].Name)
	assert.Equal(t, 1, results[1].Rules)

	// Only the valid pack lands on disk.
	_, err = os.Stat(filepath.Join(dest, "team.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "broken.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncRules_MissingRulesDir(t *testing.T) {
	client := &Client{rest: &fakeREST{responses: map[string]interface{}{}}}

	_, err := SyncRules(context.Background(), client, "acme/empty", t.TempDir())
	require.Error(t, err)

	se, ok := errors.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrGitHubFetchFailed, se.Code)
}

func TestSyncRules_BadRepoFormat(t *testing.T) {
	_, err := SyncRules(context.Background(), newSyncClient(), "just-a-name", t.TempDir())
	require.Error(t, err)

	se, ok := errors.FromError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConfigInvalid, se.Code)
}

func TestFetchFile_RequiresCoordinates(t *testing.T) {
	client := &Client{rest: &fakeREST{}}
	_, err := client.FetchFile(context.Background(), "", "repo", "path", "")
	assert.Error(t, err)
}
