package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration holds the per-conversation settings: which user's
// memory to read and write, which model serves the turn, and the
// prompt templates.
type Configuration struct {
	// UserID scopes all memory namespaces.
	UserID string `yaml:"user_id"`

	// Model selects the language model, in provider/model-name form.
	Model string `yaml:"model"`

	SystemPrompt      string `yaml:"system_prompt"`
	InstructionPrompt string `yaml:"instruction_prompt"`
	TodoPrompt        string `yaml:"todo_prompt"`
	ProfilePrompt     string `yaml:"profile_prompt"`
}

// DefaultConfiguration returns the compiled-in defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		UserID:            "default",
		Model:             "openai/gpt-4o-mini",
		SystemPrompt:      SystemPrompt,
		InstructionPrompt: InstructionUpdatePrompt,
		TodoPrompt:        TodoPrompt,
		ProfilePrompt:     ProfileUpdatePrompt,
	}
}

// configField binds one Configuration field to its setting name. The
// environment variable is the name uppercased.
type configField struct {
	name string
	dst  func(*Configuration) *string
}

var configFields = []configField{
	{"user_id", func(c *Configuration) *string { return &c.UserID }},
	{"model", func(c *Configuration) *string { return &c.Model }},
	{"system_prompt", func(c *Configuration) *string { return &c.SystemPrompt }},
	{"instruction_prompt", func(c *Configuration) *string { return &c.InstructionPrompt }},
	{"todo_prompt", func(c *Configuration) *string { return &c.TodoPrompt }},
	{"profile_prompt", func(c *Configuration) *string { return &c.ProfilePrompt }},
}

// NewConfiguration builds a Configuration from, in order of
// precedence, environment variables (setting name uppercased), the
// caller's overrides, and the compiled defaults. Empty values at a
// higher level fall through to the next.
func NewConfiguration(overrides map[string]string) Configuration {
	cfg := DefaultConfiguration()
	for _, f := range configFields {
		value := os.Getenv(strings.ToUpper(f.name))
		if value == "" {
			value = overrides[f.name]
		}
		if value != "" {
			*f.dst(&cfg) = value
		}
	}
	return cfg
}

// LoadConfigurationFile reads a YAML configuration file and overlays
// it on the defaults. Environment variables still win over file
// values.
func LoadConfigurationFile(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var file Configuration
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Configuration{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	overrides := map[string]string{
		"user_id":            file.UserID,
		"model":              file.Model,
		"system_prompt":      file.SystemPrompt,
		"instruction_prompt": file.InstructionPrompt,
		"todo_prompt":        file.TodoPrompt,
		"profile_prompt":     file.ProfilePrompt,
	}
	return NewConfiguration(overrides), nil
}
