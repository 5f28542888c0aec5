package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidRunFile = errors.New("invalid run file")

// RunFile configures the run command.
type RunFile struct {
	TickRate           time.Duration      `yaml:"tick_rate"`
	Ticks              uint64             `yaml:"ticks"`
	MaxTriggersPerTick int                `yaml:"max_triggers_per_tick"`
	LogLevel           string             `yaml:"log_level"`
	Triggers           []ScheduledTrigger `yaml:"triggers"`
}

// ScheduledTrigger sends Trigger to Target at the start of tick Tick
// (ticks count from 1).
type ScheduledTrigger struct {
	Tick     uint64 `yaml:"tick"`
	Target   string `yaml:"target"`
	Trigger  uint16 `yaml:"trigger"`
	Priority int    `yaml:"priority"`
}

func DefaultRunFile() RunFile {
	return RunFile{
		TickRate:           10 * time.Millisecond,
		Ticks:              10,
		MaxTriggersPerTick: 64,
		LogLevel:           "info",
	}
}

// LoadRunFile reads a YAML run file. Keys it leaves out keep their defaults.
func LoadRunFile(path string) (RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := DefaultRunFile()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that do not depend on the registered models.
// Ticks 0 runs until interrupted.
func (c RunFile) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive: %w", ErrInvalidRunFile)
	}
	if c.MaxTriggersPerTick < 0 {
		return fmt.Errorf("max_triggers_per_tick must not be negative: %w", ErrInvalidRunFile)
	}
	for i, tr := range c.Triggers {
		switch {
		case tr.Tick == 0:
			return fmt.Errorf("trigger %d: tick counts from 1: %w", i, ErrInvalidRunFile)
		case tr.Target == "":
			return fmt.Errorf("trigger %d: missing target: %w", i, ErrInvalidRunFile)
		case tr.Trigger == 0:
			return fmt.Errorf("trigger %d: trigger 0 is reserved for execute: %w", i, ErrInvalidRunFile)
		}
	}
	return nil
}

// schedule groups the triggers by tick, keeping file order within a tick.
func (c RunFile) schedule() map[uint64][]ScheduledTrigger {
	s := make(map[uint64][]ScheduledTrigger)
	for _, tr := range c.Triggers {
		s[tr.Tick] = append(s[tr.Tick], tr)
	}
	return s
}
