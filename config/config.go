// Package config loads runtime limits and CLI defaults from a TOML file
// using nested structs grouped by concern.
package config

import (
	"github.com/BurntSushi/toml"
)

// Execution holds the bounded-resource limits the interpreter enforces.
type Execution struct {
	CallStackDepth  int `toml:"call_stack_depth"`
	OperandStackCap int `toml:"operand_stack_depth"`
	MessageBufCap   int `toml:"message_buffer_initial_size"`
}

// Display controls how results and diagnostics are rendered.
type Display struct {
	Color bool `toml:"color"`
	Dump  bool `toml:"dump_disassembly"`
}

// Config is the root configuration document.
type Config struct {
	Execution Execution `toml:"execution"`
	Display   Display   `toml:"display"`
}

// Default returns the configuration used when no TOML file is supplied:
// a call stack 1000 deep and an operand stack 500 deep.
func Default() *Config {
	return &Config{
		Execution: Execution{
			CallStackDepth:  1000,
			OperandStackCap: 500,
			MessageBufCap:   1000,
		},
	}
}

// Load reads and parses a TOML config file, starting from Default() so an
// incomplete file only overrides the fields it names.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
