package agentfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GitState records which revision of the agent code is checked out.
type GitState struct {
	RepositoryURL string `json:"repositoryUrl"`
	Branch        string `json:"branch"`
	Commit        string `json:"commit"`
}

// Equal compares two states field by field.
func (s GitState) Equal(other GitState) bool {
	return s.RepositoryURL == other.RepositoryURL &&
		s.Branch == other.Branch &&
		s.Commit == other.Commit
}

// KeyPairFile is the public part of the agent keypair file. The private key is
// never read here.
type KeyPairFile struct {
	PublicKey string `json:"publicKey"`
}

// LoadGitState reads the git state file. A missing file yields an error
// matching fs.ErrNotExist.
func (l Layout) LoadGitState() (GitState, error) {
	var state GitState
	if err := readJSON(l.GitStateFile(), &state); err != nil {
		return GitState{}, err
	}
	return state, nil
}

// SaveGitState writes state atomically.
func (l Layout) SaveGitState(state GitState) error {
	if err := l.EnsureHome(); err != nil {
		return err
	}
	return writeJSON(l.GitStateFile(), state)
}

// LoadPublicKey returns the hex public key stored in the keypair file.
func (l Layout) LoadPublicKey() (string, error) {
	var kp KeyPairFile
	if err := readJSON(l.KeyPairFile(), &kp); err != nil {
		return "", err
	}
	key := strings.TrimSpace(kp.PublicKey)
	if key == "" {
		return "", fmt.Errorf("%s: publicKey is empty", l.KeyPairFile())
	}
	return key, nil
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) (err error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
