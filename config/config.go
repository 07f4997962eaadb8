// Package config loads the relmk.yaml pipeline configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name looked up in the project
// directory.
const DefaultFile = "relmk.yaml"

type Config struct {
	// Project is the name of the packaged project.
	Project string `yaml:"project" validate:"required"`

	// Source is the source directory the formatter, linter and type checker
	// work on.
	Source string `yaml:"source" validate:"required"`

	// Dist is the build output directory. It is removed before every build.
	Dist string `yaml:"dist" validate:"required"`

	Tools        Tools         `yaml:"tools"`
	VersionFiles []VersionFile `yaml:"version_files" validate:"min=1,dive"`
	Docs         Docs          `yaml:"docs"`
	Git          Git           `yaml:"git"`
	Extras       Extras        `yaml:"extras"`
}

type Tools struct {
	Python      string `yaml:"python" validate:"required"`
	Ruff        string `yaml:"ruff" validate:"required"`
	Mypy        string `yaml:"mypy" validate:"required"`
	SphinxBuild string `yaml:"sphinx_build" validate:"required"`
}

// VersionFile names a tracked file that carries the project version on a
// single line. Pattern is a regular expression matching that line, Template
// is the replacement line with a %s placeholder for the version literal.
type VersionFile struct {
	Path     string `yaml:"path" validate:"required"`
	Pattern  string `yaml:"pattern" validate:"required"`
	Template string `yaml:"template" validate:"required,contains=%s"`
}

func (vf VersionFile) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(vf.Pattern)
}

type Docs struct {
	Source    string `yaml:"source" validate:"required"`
	Output    string `yaml:"output" validate:"required"`
	ServeAddr string `yaml:"serve_addr" validate:"required,hostname_port"`
}

type Git struct {
	Remote    string `yaml:"remote" validate:"required"`
	Develop   string `yaml:"develop" validate:"required"`
	Main      string `yaml:"main" validate:"required"`
	TagPrefix string `yaml:"tag_prefix"`
}

// Extras are the names of the package extras installed before the related
// task group runs, e.g. pip install .[lint].
type Extras struct {
	Build string `yaml:"build" validate:"required"`
	Lint  string `yaml:"lint" validate:"required"`
	Docs  string `yaml:"docs" validate:"required"`
}

// Default returns the configuration of the wikidot project the tool grew in.
func Default() *Config {
	return &Config{
		Project: "wikidot",
		Source:  "src",
		Dist:    "dist",
		Tools: Tools{
			Python:      "python3",
			Ruff:        "ruff",
			Mypy:        "mypy",
			SphinxBuild: "sphinx-build",
		},
		VersionFiles: []VersionFile{
			{
				Path:     "pyproject.toml",
				Pattern:  `^version = ".*"$`,
				Template: `version = "%s"`,
			},
			{
				Path:     "src/wikidot/__init__.py",
				Pattern:  `^__version__ = ".*"$`,
				Template: `__version__ = "%s"`,
			},
		},
		Docs: Docs{
			Source:    "docs",
			Output:    "docs/_build",
			ServeAddr: "localhost:8000",
		},
		Git: Git{
			Remote:    "origin",
			Develop:   "develop",
			Main:      "master",
			TagPrefix: "v",
		},
		Extras: Extras{
			Build: "build",
			Lint:  "lint",
			Docs:  "docs",
		},
	}
}

// Load reads path into a copy of [Default], so the file only needs the keys
// that differ. A missing file yields the plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	for _, vf := range cfg.VersionFiles {
		if _, err := vf.Regexp(); err != nil {
			return fmt.Errorf("version file %s: %w", vf.Path, err)
		}
	}
	return nil
}
