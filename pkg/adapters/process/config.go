package process

// ProcessConfig is an allow-listed command as it appears in arbor.yaml.
type ProcessConfig struct {
	Command     string   `yaml:"command" json:"command"`
	Args        []string `yaml:"args" json:"args"`
	Description string   `yaml:"description" json:"description"`
}
