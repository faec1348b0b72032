// Package agents routes conversation turns to the concierge agents.
package agents

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"gopkg.in/yaml.v3"
)

//go:embed agents.yaml
var defaultConfig []byte

var ErrUnknownAgent = errors.New("unknown agent")

// AgentConfig is the YAML definition of one member agent.
type AgentConfig struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description,omitempty"`
	Instructions []string `yaml:"instructions,omitempty"`
	Tools        []string `yaml:"tools"`
	Keywords     []string `yaml:"keywords,omitempty"`
}

// HasTool reports whether name is in the agent's tool list.
func (a *AgentConfig) HasTool(name string) bool {
	for _, t := range a.Tools {
		if t == name {
			return true
		}
	}
	return false
}

// TeamConfig describes the orchestrator that routes between members.
type TeamConfig struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Mode         string   `yaml:"mode"`
	Fallback     string   `yaml:"fallback,omitempty"`
	Instructions []string `yaml:"instructions,omitempty"`
}

// FileConfig is the top-level structure of an agents YAML file.
type FileConfig struct {
	Team   TeamConfig    `yaml:"team"`
	Agents []AgentConfig `yaml:"agents"`
}

// Load reads the agent config at path, or the embedded default when path is empty.
func Load(path string) (*FileConfig, error) {
	if path == "" {
		return Parse(defaultConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents config %s: %w", path, err)
	}
	fc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// Parse decodes and checks an agents YAML document.
func Parse(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse agents config: %w", err)
	}
	if len(fc.Agents) == 0 {
		return nil, errors.New("agents config defines no agents")
	}
	seen := make(map[string]bool, len(fc.Agents))
	for _, a := range fc.Agents {
		if a.ID == "" {
			return nil, errors.New("agent without id")
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true
	}
	if fc.Team.Fallback == "" {
		fc.Team.Fallback = fc.Agents[0].ID
	}
	if !seen[fc.Team.Fallback] {
		return nil, fmt.Errorf("fallback agent %q: %w", fc.Team.Fallback, ErrUnknownAgent)
	}
	return &fc, nil
}

// Agent looks up a member by id.
func (fc *FileConfig) Agent(id string) (*AgentConfig, error) {
	for i := range fc.Agents {
		if fc.Agents[i].ID == id {
			return &fc.Agents[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
}

// CheckTools returns an error naming every configured tool missing from reg.
func (fc *FileConfig) CheckTools(reg *tools.Registry) error {
	var missing []string
	for _, a := range fc.Agents {
		for _, name := range a.Tools {
			if _, ok := reg.Get(name); !ok {
				missing = append(missing, a.ID+"/"+name)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("agents reference unregistered tools: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RenderInstructions fills the {current_user_id} and {current_session_id} placeholders.
func RenderInstructions(lines []string, userID, sessionID string) []string {
	r := strings.NewReplacer("{current_user_id}", userID, "{current_session_id}", sessionID)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Replace(l)
	}
	return out
}
