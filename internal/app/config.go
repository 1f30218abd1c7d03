package app

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"stencil/internal/errors"
	"stencil/internal/paths"
)

// ConfigFile is the name of the optional config file in the config dir.
const ConfigFile = "config.yaml"

// fileConfig is the on-disk schema of config.yaml. Every field is optional.
type fileConfig struct {
	Defaults struct {
		Branch         string `yaml:"branch"`
		Remote         string `yaml:"remote"`
		InstallCommand string `yaml:"install_command"`
	} `yaml:"defaults"`
	Author struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"author"`
	Templates struct {
		Dirs []string `yaml:"dirs"`
	} `yaml:"templates"`
	Forge struct {
		BaseURL  string `yaml:"base_url"`
		TokenEnv string `yaml:"token_env"`
	} `yaml:"forge"`
}

// Config is the fully resolved runtime configuration.
type Config struct {
	ConfigDir string
	DataDir   string

	Branch     string // initial branch for new repositories
	RemoteName string // usually "origin"
	InstallCmd string // install hook fallback when the template declares none

	AuthorName  string
	AuthorEmail string

	TemplateDirs []string

	ForgeBaseURL string
	ForgeToken   string

	LogLevel string
	DryRun   bool
}

// LoadConfig resolves directories, reads config.yaml when present, and
// applies environment overrides. configDirOverride comes from --config-dir.
func LoadConfig(getenv paths.Getenv, home, configDirOverride string) (Config, error) {
	cfg := Config{
		ConfigDir:  paths.ConfigDir(getenv, home),
		DataDir:    paths.DataDir(getenv, home),
		Branch:     "main",
		RemoteName: "origin",
		InstallCmd: "make install",
	}
	if configDirOverride != "" {
		cfg.ConfigDir = configDirOverride
	}

	fc, err := readConfigFile(filepath.Join(cfg.ConfigDir, ConfigFile))
	if err != nil {
		return Config{}, err
	}
	if fc.Defaults.Branch != "" {
		cfg.Branch = fc.Defaults.Branch
	}
	if fc.Defaults.Remote != "" {
		cfg.RemoteName = fc.Defaults.Remote
	}
	if fc.Defaults.InstallCommand != "" {
		cfg.InstallCmd = fc.Defaults.InstallCommand
	}
	cfg.AuthorName = fc.Author.Name
	cfg.AuthorEmail = fc.Author.Email
	cfg.TemplateDirs = fc.Templates.Dirs
	cfg.ForgeBaseURL = fc.Forge.BaseURL

	tokenEnv := fc.Forge.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "STENCIL_FORGE_TOKEN"
	}
	cfg.ForgeToken = getenv(tokenEnv)

	// Environment beats the file.
	if v := getenv("STENCIL_BRANCH"); v != "" {
		cfg.Branch = v
	}
	if v := getenv("STENCIL_FORGE_URL"); v != "" {
		cfg.ForgeBaseURL = v
	}

	return cfg, nil
}

// readConfigFile parses the config file; a missing file yields zero values.
func readConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fc, nil
	}
	if err != nil {
		return fc, errors.Wrap(errors.EInternal, "failed to read config.yaml", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fc, errors.Wrap(errors.EUsage, "invalid config.yaml", err)
	}
	return fc, nil
}
