// Package gitrepo detects the repository URL from the enclosing git
// repository's origin remote. It uses go-git, so no git CLI is required.
// The detected URL is only a fallback: explicitly configured link templates
// always win.
package gitrepo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// originRemote is the remote consulted for the repository URL.
const originRemote = "origin"

// DetectRepositoryURL returns the https repository URL derived from the
// origin remote of the git repository enclosing path. If path is empty, the
// current working directory is used.
func DetectRepositoryURL(path string) (string, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", path, err)
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		return "", fmt.Errorf("resolving %s remote: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%s remote has no URL", originRemote)
	}

	return NormalizeRemoteURL(urls[0]), nil
}

// NormalizeRemoteURL converts the common remote URL forms to a plain https
// URL without the .git suffix:
//
//	git@github.com:org/repo.git      -> https://github.com/org/repo
//	ssh://git@github.com/org/repo    -> https://github.com/org/repo
//	https://github.com/org/repo.git  -> https://github.com/org/repo
func NormalizeRemoteURL(raw string) string {
	url := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	switch {
	case strings.HasPrefix(url, "ssh://"):
		url = strings.TrimPrefix(url, "ssh://")
		if at := strings.Index(url, "@"); at >= 0 {
			url = url[at+1:]
		}
		return "https://" + url
	case strings.HasPrefix(url, "git@"):
		url = strings.TrimPrefix(url, "git@")
		url = strings.Replace(url, ":", "/", 1)
		return "https://" + url
	default:
		return url
	}
}
