package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SeedProfile fixes how many rows the seeder generates per table.
type SeedProfile struct {
	Departments int    `yaml:"departments"`
	Employees   int    `yaml:"employees"`
	Salaries    int    `yaml:"salaries"`
	Businesses  int    `yaml:"businesses"`
	RandomSeed  uint64 `yaml:"random_seed"`
}

// UniformSeedProfile returns a profile with the same count for every table.
func UniformSeedProfile(count int) SeedProfile {
	return SeedProfile{
		Departments: count,
		Employees:   count,
		Salaries:    count,
		Businesses:  count,
	}
}

// LoadSeedProfile reads a YAML seed profile. Tables missing from the file
// fall back to fallbackCount.
func LoadSeedProfile(path string, fallbackCount int) (SeedProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedProfile{}, fmt.Errorf("read seed profile: %w", err)
	}

	var doc struct {
		Departments *int   `yaml:"departments"`
		Employees   *int   `yaml:"employees"`
		Salaries    *int   `yaml:"salaries"`
		Businesses  *int   `yaml:"businesses"`
		RandomSeed  uint64 `yaml:"random_seed"`
	}
	if err := yaml.UnmarshalStrict(raw, &doc); err != nil {
		return SeedProfile{}, fmt.Errorf("decode seed profile: %w", err)
	}

	profile := UniformSeedProfile(fallbackCount)
	profile.RandomSeed = doc.RandomSeed
	for _, f := range []struct {
		name string
		src  *int
		dst  *int
	}{
		{"departments", doc.Departments, &profile.Departments},
		{"employees", doc.Employees, &profile.Employees},
		{"salaries", doc.Salaries, &profile.Salaries},
		{"businesses", doc.Businesses, &profile.Businesses},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return SeedProfile{}, fmt.Errorf("seed profile: %s must not be negative, got %d", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	return profile, nil
}

// ResolveSeedProfile picks the profile file when SEED_PROFILE_PATH is set,
// otherwise SEED_COUNT for every table.
func ResolveSeedProfile() (SeedProfile, error) {
	if DefaultEnvConfig == nil {
		return SeedProfile{}, fmt.Errorf("env config not loaded")
	}
	if DefaultEnvConfig.SEED_COUNT < 0 {
		return SeedProfile{}, fmt.Errorf("SEED_COUNT must not be negative, got %d", DefaultEnvConfig.SEED_COUNT)
	}
	if DefaultEnvConfig.SEED_PROFILE_PATH == "" {
		return UniformSeedProfile(DefaultEnvConfig.SEED_COUNT), nil
	}
	return LoadSeedProfile(DefaultEnvConfig.SEED_PROFILE_PATH, DefaultEnvConfig.SEED_COUNT)
}
