// Package agentfs describes the on-disk layout of an agent home directory and
// reads the small JSON state files kept there.
package agentfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the agent home directory.
const (
	AgentProvisionFileName = "agent-provision.json"
	CharacterFileName      = "character.json"
	EnvFileName            = "env.production"
	RegistrationFileName   = "registration.json"
	KeyPairFileName        = "agent-keypair.json"
	GitStateFileName       = "agent-git.json"
	CodeDirName            = "code"
	RuntimeSocketFileName  = "runtime-server.sock"
)

const homeDirPerm = 0o755

// Layout resolves file paths under an agent home directory.
type Layout struct {
	Home string
}

// NewLayout returns the layout rooted at home.
func NewLayout(home string) Layout {
	return Layout{Home: filepath.Clean(home)}
}

func (l Layout) join(name string) string { return filepath.Join(l.Home, name) }

func (l Layout) AgentProvisionFile() string { return l.join(AgentProvisionFileName) }
func (l Layout) CharacterFile() string { return l.join(CharacterFileName) }
func (l Layout) EnvFile() string { return l.join(EnvFileName) }
func (l Layout) RegistrationFile() string { return l.join(RegistrationFileName) }
func (l Layout) KeyPairFile() string { return l.join(KeyPairFileName) }
func (l Layout) GitStateFile() string { return l.join(GitStateFileName) }
func (l Layout) CodeDir() string { return l.join(CodeDirName) }
func (l Layout) RuntimeSocketFile() string { return l.join(RuntimeSocketFileName) }

// Entry is a named path of the layout.
type Entry struct {
	Name string
	Path string
}

// Entries lists every path of the layout in a stable order.
func (l Layout) Entries() []Entry {
	return []Entry{
		{Name: "home", Path: l.Home},
		{Name: "agent_provision", Path: l.AgentProvisionFile()},
		{Name: "character", Path: l.CharacterFile()},
		{Name: "env", Path: l.EnvFile()},
		{Name: "registration", Path: l.RegistrationFile()},
		{Name: "keypair", Path: l.KeyPairFile()},
		{Name: "git_state", Path: l.GitStateFile()},
		{Name: "code", Path: l.CodeDir()},
		{Name: "runtime_socket", Path: l.RuntimeSocketFile()},
	}
}

// EnsureHome creates the home directory and any missing parents.
func (l Layout) EnsureHome() error {
	if err := os.MkdirAll(l.Home, homeDirPerm); err != nil {
		return fmt.Errorf("create agent home %s: %w", l.Home, err)
	}
	return nil
}
