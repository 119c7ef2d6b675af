package gitrepo

import (
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRemoteURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw  string
		want string
	}{
		"https": {
			raw:  "https://github.com/acme/widgets",
			want: "https://github.com/acme/widgets",
		},
		"https with git suffix": {
			raw:  "https://github.com/acme/widgets.git",
			want: "https://github.com/acme/widgets",
		},
		"scp-like ssh": {
			raw:  "git@github.com:acme/widgets.git",
			want: "https://github.com/acme/widgets",
		},
		"ssh scheme": {
			raw:  "ssh://git@github.com/acme/widgets",
			want: "https://github.com/acme/widgets",
		},
		"ssh scheme without user": {
			raw:  "ssh://github.com/acme/widgets.git",
			want: "https://github.com/acme/widgets",
		},
		"surrounding whitespace": {
			raw:  "  https://github.com/acme/widgets.git\n",
			want: "https://github.com/acme/widgets",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeRemoteURL(tt.raw))
		})
	}
}

func TestDetectRepositoryURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widgets.git"},
	})
	require.NoError(t, err)

	url, err := DetectRepositoryURL(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets", url)
}

func TestDetectRepositoryURL_NoRepository(t *testing.T) {
	t.Parallel()

	_, err := DetectRepositoryURL(t.TempDir())
	require.Error(t, err)
}

func TestDetectRepositoryURL_NoOriginRemote(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = DetectRepositoryURL(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")
}
