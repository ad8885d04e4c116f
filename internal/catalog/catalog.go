// Package catalog loads the YAML inputs of the CLI: the seed snapshot a store
// boots from, job listings, and a user's skill profile.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/wayhome/internal/matching"
	"github.com/abhisek/wayhome/internal/progression"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// Profile is a user's skill set and language level.
type Profile struct {
	Name          string               `yaml:"name"`
	LanguageLevel string               `yaml:"languageLevel"`
	Skills        []matching.UserSkill `yaml:"skills"`
}

type jobFile struct {
	Jobs []matching.Job `yaml:"jobs"`
}

// DefaultSeed returns the embedded starting snapshot.
func DefaultSeed() (progression.Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed snapshot from path, or the embedded default when
// path is empty.
func LoadSeed(path string) (progression.Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return progression.Seed{}, fmt.Errorf("reading seed %s: %w", path, err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return progression.Seed{}, fmt.Errorf("seed %s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes and checks a YAML seed snapshot.
func ParseSeed(data []byte) (progression.Seed, error) {
	var seed progression.Seed
	if err := decodeStrict(data, &seed); err != nil {
		return progression.Seed{}, fmt.Errorf("decoding seed: %w", err)
	}
	if err := validateSeed(seed); err != nil {
		return progression.Seed{}, err
	}
	return seed, nil
}

func validateSeed(seed progression.Seed) error {
	nodes := make(map[string]bool, len(seed.PathwayNodes))
	for i, n := range seed.PathwayNodes {
		switch {
		case strings.TrimSpace(n.ID) == "":
			return fmt.Errorf("pathway[%d]: id is required", i)
		case nodes[n.ID]:
			return fmt.Errorf("pathway[%d]: duplicate id %q", i, n.ID)
		case n.Status != "" && !n.Status.Valid():
			return fmt.Errorf("pathway node %q: unknown status %q", n.ID, n.Status)
		case !n.Area.Valid():
			return fmt.Errorf("pathway node %q: unknown area %q", n.ID, n.Area)
		}
		nodes[n.ID] = true
	}

	tasks := make(map[string]bool, len(seed.Tasks))
	for i, t := range seed.Tasks {
		switch {
		case strings.TrimSpace(t.ID) == "":
			return fmt.Errorf("tasks[%d]: id is required", i)
		case tasks[t.ID]:
			return fmt.Errorf("tasks[%d]: duplicate id %q", i, t.ID)
		case t.Status != "" && t.Status != progression.TaskOpen && t.Status != progression.TaskCompleted:
			return fmt.Errorf("task %q: unknown status %q", t.ID, t.Status)
		}
		tasks[t.ID] = true
	}

	for i, s := range seed.Skills {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("skills[%d]: id is required", i)
		}
		if s.Source != "" && !s.Source.Valid() {
			return fmt.Errorf("skill %q: unknown source %q", s.ID, s.Source)
		}
	}
	return nil
}

// LoadJobs reads a job catalog of the form `jobs: [...]`.
func LoadJobs(path string) ([]matching.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs %s: %w", path, err)
	}
	var f jobFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
	}
	for i, j := range f.Jobs {
		if strings.TrimSpace(j.ID) == "" {
			return nil, fmt.Errorf("jobs %s: jobs[%d]: id is required", path, i)
		}
	}
	return f.Jobs, nil
}

// LoadProfile reads a skill profile.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var p Profile
	if err := decodeStrict(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	if err := validateProfile(p); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func validateProfile(p Profile) error {
	if p.LanguageLevel != "" {
		if _, ok := matching.ParseLanguageLevel(p.LanguageLevel); !ok {
			return fmt.Errorf("unknown language level %q", p.LanguageLevel)
		}
	}
	for i, s := range p.Skills {
		switch {
		case strings.TrimSpace(s.Skill) == "":
			return fmt.Errorf("skills[%d]: skill is required", i)
		case s.Source == "":
			return fmt.Errorf("skill %q: source is required", s.Skill)
		case !s.Source.Valid():
			return fmt.Errorf("skill %q: unknown source %q", s.Skill, s.Source)
		}
	}
	return nil
}

// decodeStrict rejects unknown keys so typos in hand-written files surface.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to the zero value.
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
