package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShellConfig is a full shell configuration as loaded from a YAML file.
type ShellConfig struct {
	Ports      PortConfiguration
	Facilities FacilitiesOrigin
}

// yamlShell mirrors the file layout:
//
//	facilities: create | import
//	provides:
//	  dispatched: all | remaining | none | [name, ...]
//	  passthrough: none
//	requires:
//	  dispatched: all
//	  passthrough: none
//	multiclient:
//	  port: api
//	  claim: Claim
//	  reply: Result.Ok
//	  release: Release
type yamlShell struct {
	Facilities  string           `yaml:"facilities"`
	Provides    *yamlPolicy      `yaml:"provides"`
	Requires    *yamlPolicy      `yaml:"requires"`
	MultiClient *yamlMultiClient `yaml:"multiclient"`
}

type yamlPolicy struct {
	Dispatched  yamlSelector `yaml:"dispatched"`
	Passthrough yamlSelector `yaml:"passthrough"`
}

type yamlMultiClient struct {
	Port    string `yaml:"port"`
	Claim   string `yaml:"claim"`
	Reply   string `yaml:"reply"`
	Release string `yaml:"release"`
}

// yamlSelector accepts either a wildcard scalar or a sequence of names.
type yamlSelector struct {
	sel PortSelector
}

func (s *yamlSelector) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var word string
		if err := value.Decode(&word); err != nil {
			return err
		}
		switch word {
		case "all":
			s.sel = All
		case "remaining":
			s.sel = Remaining
		case "none":
			s.sel = None
		default:
			return fmt.Errorf("unknown selector %q (want all, remaining, none or a name list)", word)
		}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		set, err := NewExplicitSet(names...)
		if err != nil {
			return err
		}
		s.sel = set
		return nil
	default:
		return fmt.Errorf("selector must be a scalar wildcard or a name list")
	}
}

// Load parses a YAML shell configuration. Validation is the same as for
// programmatic construction; file-specific errors wrap the underlying
// cause.
func Load(data []byte) (ShellConfig, error) {
	var y yamlShell
	if err := yaml.Unmarshal(data, &y); err != nil {
		return ShellConfig{}, fmt.Errorf("config: parse: %w", err)
	}

	var origin FacilitiesOrigin
	switch y.Facilities {
	case "", "create":
		origin = FacilitiesCreate
	case "import":
		origin = FacilitiesImport
	default:
		return ShellConfig{}, &ConfigError{Reason: fmt.Sprintf("unknown facilities origin %q", y.Facilities)}
	}

	provides, err := policyFromYAML(y.Provides, "provides")
	if err != nil {
		return ShellConfig{}, err
	}
	requires, err := policyFromYAML(y.Requires, "requires")
	if err != nil {
		return ShellConfig{}, err
	}

	ports, err := NewPortConfiguration(provides, requires)
	if err != nil {
		return ShellConfig{}, err
	}

	if y.MultiClient != nil {
		policy, err := NewMultiClientPolicy(
			y.MultiClient.Port,
			y.MultiClient.Claim,
			y.MultiClient.Reply,
			y.MultiClient.Release,
		)
		if err != nil {
			return ShellConfig{}, err
		}
		ports, err = ports.WithMultiClient(policy)
		if err != nil {
			return ShellConfig{}, err
		}
	}

	return ShellConfig{Ports: ports, Facilities: origin}, nil
}

// LoadFile reads and parses a YAML shell configuration file.
func LoadFile(path string) (ShellConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShellConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Load(data)
	if err != nil {
		return ShellConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func policyFromYAML(p *yamlPolicy, label string) (SemanticsPolicy, error) {
	if p == nil {
		return SemanticsPolicy{}, &ConfigError{Label: label, Reason: "policy section missing"}
	}
	if p.Dispatched.sel == nil || p.Passthrough.sel == nil {
		return SemanticsPolicy{}, &ConfigError{Label: label, Reason: "both dispatched and passthrough selectors must be set"}
	}
	pol, err := NewSemanticsPolicy(p.Dispatched.sel, p.Passthrough.sel)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok && ce.Label == "" {
			ce.Label = label
		}
		return SemanticsPolicy{}, err
	}
	return pol, nil
}
