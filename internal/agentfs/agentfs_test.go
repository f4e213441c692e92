package agentfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/home/agent/.agentcoin-fun/")
	assert.Equal(t, "/home/agent/.agentcoin-fun", l.Home)
	assert.Equal(t, "/home/agent/.agentcoin-fun/agent-keypair.json", l.KeyPairFile())
	assert.Equal(t, "/home/agent/.agentcoin-fun/agent-git.json", l.GitStateFile())
	assert.Equal(t, "/home/agent/.agentcoin-fun/code", l.CodeDir())
	assert.Equal(t, "/home/agent/.agentcoin-fun/runtime-server.sock", l.RuntimeSocketFile())

	entries := l.Entries()
	require.Len(t, entries, 9)
	assert.Equal(t, "home", entries[0].Name)
	for _, e := range entries[1:] {
		assert.Equal(t, l.Home, filepath.Dir(e.Path), e.Name)
	}
}

func TestEnsureHome(t *testing.T) {
	l := NewLayout(filepath.Join(t.TempDir(), "nested", ".agentcoin-fun"))
	require.NoError(t, l.EnsureHome())
	info, err := os.Stat(l.Home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	require.NoError(t, l.EnsureHome(), "idempotent")
}

func TestGitStateEqual(t *testing.T) {
	a := GitState{RepositoryURL: "https://github.com/agent/code", Branch: "main", Commit: "abc123"}
	assert.True(t, a.Equal(a))

	b := a
	b.Commit = "def456"
	assert.False(t, a.Equal(b))

	c := a
	c.Branch = "dev"
	assert.False(t, a.Equal(c))

	d := a
	d.RepositoryURL = "https://github.com/agent/other"
	assert.False(t, a.Equal(d))
}

func TestGitStateSaveLoad(t *testing.T) {
	l := NewLayout(filepath.Join(t.TempDir(), "home"))

	_, err := l.LoadGitState()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	want := GitState{RepositoryURL: "https://github.com/agent/code", Branch: "main", Commit: "abc123"}
	require.NoError(t, l.SaveGitState(want))

	got, err := l.LoadGitState()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	raw, err := os.ReadFile(l.GitStateFile())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"repositoryUrl"`)

	matches, err := filepath.Glob(filepath.Join(l.Home, ".agent-git.json.*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary files must be cleaned up")
}

func TestLoadPublicKey(t *testing.T) {
	l := NewLayout(t.TempDir())

	_, err := l.LoadPublicKey()
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, os.WriteFile(l.KeyPairFile(), []byte(`{"publicKey":" 04abcd ","privateKey":"secret"}`), 0o600))
	key, err := l.LoadPublicKey()
	require.NoError(t, err)
	assert.Equal(t, "04abcd", key)

	require.NoError(t, os.WriteFile(l.KeyPairFile(), []byte(`{"publicKey":""}`), 0o600))
	_, err = l.LoadPublicKey()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(l.KeyPairFile(), []byte(`not json`), 0o600))
	_, err = l.LoadPublicKey()
	assert.Error(t, err)
}
