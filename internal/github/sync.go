package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptshear/promptshear/internal/errors"
	"github.com/promptshear/promptshear/internal/rules"
)

// RulesDir is the directory rule packs live in inside a shared repo.
const RulesDir = "rules"

// SyncResult describes one synced rule pack.
type SyncResult struct {
	Name     string // pack name from the YAML
	FileName string // file name in the repo
	Rules    int    // number of rules in the pack
	Skipped  bool   // true if the file failed validation and was not written
	Reason   string // why it was skipped
}

// SyncRules fetches every rule pack from a repo's rules/ directory into
// destDir. Each pack is validated before writing; invalid packs are
// reported as skipped, never written. Results are sorted by file name.
func SyncRules(ctx context.Context, client *Client, ownerRepo, destDir string) ([]SyncResult, error) {
	owner, repo, err := splitOwnerRepo(ownerRepo)
	if err != nil {
		return nil, err
	}

	entries, err := client.ListDirectory(ctx, owner, repo, RulesDir, "")
	if err != nil {
		return nil, errors.GitHubFetchFailed(ownerRepo, err)
	}
	if entries == nil {
		return nil, errors.GitHubFetchFailed(ownerRepo, fmt.Errorf("no %s/ directory", RulesDir))
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	var results []SyncResult
	for _, entry := range entries {
		if entry.Type != "file" || !isYAML(entry.Name) {
			continue
		}

		content, err := client.FetchFile(ctx, owner, repo, entry.Path, "")
		if err != nil {
			return results, errors.GitHubFetchFailed(ownerRepo, err)
		}

		result := SyncResult{FileName: entry.Name}
		pack, err := rules.ParsePack([]byte(content), rules.SourcePersonal, entry.Name)
		if err != nil {
			result.Skipped = true
			result.Reason = err.Error()
		} else {
			result.Name = pack.Name
			result.Rules = len(pack.Rules)
			if err := os.WriteFile(filepath.Join(destDir, entry.Name), []byte(content), 0644); err != nil {
				return results, err
			}
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].FileName < results[j].FileName })
	return results, nil
}

func splitOwnerRepo(ownerRepo string) (string, string, error) {
	parts := strings.SplitN(ownerRepo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New(errors.ErrConfigInvalid,
			fmt.Sprintf("invalid repository %q", ownerRepo),
			"Use owner/repo format, e.g. acme/prompt-rules")
	}
	return parts[0], parts[1], nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
