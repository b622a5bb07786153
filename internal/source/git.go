package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/rs/zerolog/log"
)

// RepoInfo contains parsed repository information.
type RepoInfo struct {
	Owner    string
	Name     string
	URL      string
	CloneURL string
	Branch   string
}

// CloneResult contains the result of a clone operation.
type CloneResult struct {
	Path      string
	CommitSHA string
	Branch    string
}

// IsRepoURL reports whether the argument looks like a remote repository
// rather than a local path.
func IsRepoURL(arg string) bool {
	return strings.HasPrefix(arg, "git@") ||
		strings.HasPrefix(arg, "https://") ||
		strings.HasPrefix(arg, "http://")
}

// ParseRepoURL parses a GitHub URL (https or ssh form) into repo info.
func ParseRepoURL(rawURL string) (*RepoInfo, error) {
	// git@github.com:owner/repo.git form
	if strings.HasPrefix(rawURL, "git@") {
		parts := strings.Split(rawURL, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SSH URL format: %s", rawURL)
		}
		pathParts := strings.Split(strings.TrimSuffix(parts[1], ".git"), "/")
		if len(pathParts) != 2 {
			return nil, fmt.Errorf("invalid repo path: %s", parts[1])
		}
		return &RepoInfo{
			Owner:    pathParts[0],
			Name:     pathParts[1],
			URL:      rawURL,
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", pathParts[0], pathParts[1]),
			Branch:   "main",
		}, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsed.Host != "github.com" {
		return nil, fmt.Errorf("only github.com URLs are supported, got: %s", parsed.Host)
	}

	pathParts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(pathParts) < 2 {
		return nil, fmt.Errorf("invalid repo path: %s", parsed.Path)
	}

	owner := pathParts[0]
	name := strings.TrimSuffix(pathParts[1], ".git")

	return &RepoInfo{
		Owner:    owner,
		Name:     name,
		URL:      rawURL,
		CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", owner, name),
		Branch:   "main",
	}, nil
}

// CloneService clones repositories into a workspace directory.
type CloneService struct {
	baseDir string
	token   string
}

// NewCloneService creates a clone service. The token is optional and only
// needed for private repositories.
func NewCloneService(baseDir, token string) *CloneService {
	return &CloneService{
		baseDir: baseDir,
		token:   token,
	}
}

// Clone shallow-clones the repository into baseDir/owner/name, replacing
// any previous checkout.
func (s *CloneService) Clone(ctx context.Context, info *RepoInfo) (*CloneResult, error) {
	repoDir := filepath.Join(s.baseDir, info.Owner, info.Name)

	if _, err := os.Stat(repoDir); err == nil {
		log.Debug().Str("path", repoDir).Msg("removing existing repo directory")
		if err := os.RemoveAll(repoDir); err != nil {
			return nil, fmt.Errorf("failed to remove existing directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(repoDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	log.Info().
		Str("url", info.CloneURL).
		Str("path", repoDir).
		Msg("cloning repository")

	cloneOpts := &git.CloneOptions{
		URL:   info.CloneURL,
		Depth: 1,
	}

	if s.token != "" {
		cloneOpts.Auth = &http.BasicAuth{
			Username: "git",
			Password: s.token,
		}
	}

	if info.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(info.Branch)
		cloneOpts.SingleBranch = true
	}

	repo, err := git.PlainCloneContext(ctx, repoDir, false, cloneOpts)
	if err != nil {
		// The named branch may not exist, retry with the default.
		if strings.Contains(err.Error(), "reference not found") && info.Branch != "" {
			log.Debug().Str("branch", info.Branch).Msg("branch not found, trying default")
			cloneOpts.ReferenceName = ""
			cloneOpts.SingleBranch = false
			repo, err = git.PlainCloneContext(ctx, repoDir, false, cloneOpts)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to clone: %w", err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	result := &CloneResult{
		Path:      repoDir,
		CommitSHA: head.Hash().String(),
		Branch:    head.Name().Short(),
	}

	log.Info().
		Str("commit", result.CommitSHA[:8]).
		Str("branch", result.Branch).
		Msg("clone complete")

	return result, nil
}
