package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "https URL",
			url:       "https://github.com/JuanJml01/Lector",
			wantOwner: "JuanJml01",
			wantRepo:  "Lector",
		},
		{
			name:      "https URL with .git suffix",
			url:       "https://github.com/torvalds/linux.git",
			wantOwner: "torvalds",
			wantRepo:  "linux",
		},
		{
			name:      "SSH URL",
			url:       "git@github.com:owner/repo.git",
			wantOwner: "owner",
			wantRepo:  "repo",
		},
		{
			name:    "non-github host",
			url:     "https://gitlab.com/owner/repo",
			wantErr: true,
		},
		{
			name:    "missing repo segment",
			url:     "https://github.com/owner",
			wantErr: true,
		},
		{
			name:    "malformed SSH URL",
			url:     "git@github.com/owner/repo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseRepoURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, info.Owner)
			assert.Equal(t, tt.wantRepo, info.Name)
			assert.Contains(t, info.CloneURL, ".git")
		})
	}
}

func TestIsRepoURL(t *testing.T) {
	assert.True(t, IsRepoURL("https://github.com/owner/repo"))
	assert.True(t, IsRepoURL("git@github.com:owner/repo.git"))
	assert.True(t, IsRepoURL("http://github.com/owner/repo"))
	assert.False(t, IsRepoURL("./src"))
	assert.False(t, IsRepoURL("/tmp/project"))
	assert.False(t, IsRepoURL("repo"))
}
