package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/library"
)

// Defaults
const (
	DefaultGirDirectory = "gir-files"
	DefaultTargetPath   = "src/auto"
	EnvPrefix           = "GIRGEN_"
)

// configFileNames are searched in order when no config file is given.
var configFileNames = []string{"girgen.yaml", "girgen.yml", "Gir.toml"}

// pathKeys are resolved relative to the config file directory.
var pathKeys = []string{"gir_directory", "target_path"}

type fileConfig struct {
	Library               string       `koanf:"library"`
	GirDirectory          string       `koanf:"gir_directory"`
	TargetPath            string       `koanf:"target_path"`
	MinCfgVersion         string       `koanf:"min_cfg_version"`
	MakeBackup            bool         `koanf:"make_backup"`
	GenerateSafetyAsserts bool         `koanf:"generate_safety_asserts"`
	Generate              []string     `koanf:"generate"`
	Objects               []fileObject `koanf:"object"`
}

type fileObject struct {
	Name                 string       `koanf:"name"`
	Status               string       `koanf:"status"`
	GenerateDisplayTrait bool         `koanf:"generate_display_trait"`
	MustUse              bool         `koanf:"must_use"`
	Derives              []string     `koanf:"derives"`
	Members              []fileMember `koanf:"member"`
}

type fileMember struct {
	Name              string `koanf:"name"`
	Pattern           string `koanf:"pattern"`
	Alias             bool   `koanf:"alias"`
	Ignore            bool   `koanf:"ignore"`
	Version           string `koanf:"version"`
	DeprecatedVersion string `koanf:"deprecated_version"`
}

// FindConfigFile returns explicit if set, otherwise the first known config
// file name present in dir. Returns "" when there is none.
func FindConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// parserFor picks the koanf parser from the file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLParser()
	default:
		return yaml.Parser()
	}
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// flags may be nil; only flags that were explicitly set are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"gir_directory": DefaultGirDirectory,
		"target_path":   DefaultTargetPath,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	// 2. Config file
	cwd, _ := os.Getwd()
	used := FindConfigFile(cfgFile, cwd)
	baseDir := cwd
	if used != "" {
		if err := k.Load(file.Provider(used), parserFor(used)); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", used)
		}
		if abs, err := filepath.Abs(used); err == nil {
			baseDir = filepath.Dir(abs)
		}
	}

	// 3. Environment: GIRGEN_TARGET_PATH -> target_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "loading environment")
	}

	// 4. Flags. Paths given on the command line are relative to the working
	// directory, so they are made absolute before path resolution below.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			val := posflag.FlagVal(flags, f)
			if isPathKey(key) {
				if s, ok := val.(string); ok && s != "" {
					if abs, err := filepath.Abs(s); err == nil {
						return key, abs
					}
				}
			}
			return key, val
		}), nil); err != nil {
			return nil, errors.Wrap(err, "loading flags")
		}
	}

	var raw fileConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	cfg, err := build(&raw)
	if err != nil {
		if used != "" {
			return nil, errors.Wrapf(err, "invalid config %s", used)
		}
		return nil, err
	}
	cfg.File = used
	cfg.GirDirectory = resolvePathRelativeTo(cfg.GirDirectory, baseDir)
	cfg.TargetPath = resolvePathRelativeTo(cfg.TargetPath, baseDir)
	return cfg, nil
}

func isPathKey(key string) bool {
	for _, k := range pathKeys {
		if k == key {
			return true
		}
	}
	return false
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// build converts the decoded file shape into a Config. Objects listed under
// "object" come first in file order, then names from "generate" that are not
// already listed.
func build(raw *fileConfig) (*Config, error) {
	if strings.TrimSpace(raw.Library) == "" {
		return nil, errors.WithHint(errors.New("library is required"), `set library = "<Namespace>" in the config file`)
	}

	cfg := &Config{
		Library:               raw.Library,
		GirDirectory:          raw.GirDirectory,
		TargetPath:            raw.TargetPath,
		MakeBackup:            raw.MakeBackup,
		GenerateSafetyAsserts: raw.GenerateSafetyAsserts,
	}

	if raw.MinCfgVersion != "" {
		v, err := library.ParseVersion(raw.MinCfgVersion)
		if err != nil {
			return nil, errors.Wrap(err, "min_cfg_version")
		}
		cfg.MinCfgVersion = v
	}

	seen := make(map[string]bool)
	for i, fo := range raw.Objects {
		obj, err := buildObject(fo)
		if err != nil {
			return nil, errors.Wrapf(err, "object[%d]", i)
		}
		if seen[obj.Name] {
			return nil, errors.Newf("object[%d]: duplicate object %q", i, obj.Name)
		}
		seen[obj.Name] = true
		cfg.Objects = append(cfg.Objects, obj)
	}

	for _, name := range raw.Generate {
		if seen[name] {
			continue
		}
		seen[name] = true
		cfg.Objects = append(cfg.Objects, &Object{Name: name, Status: StatusGenerate})
	}

	return cfg, nil
}

func buildObject(fo fileObject) (*Object, error) {
	if fo.Name == "" {
		return nil, errors.New("name is required")
	}
	if fo.Status == "" {
		return nil, errors.Newf("%s: status is required", fo.Name)
	}
	status, err := ParseStatus(fo.Status)
	if err != nil {
		return nil, errors.Wrap(err, fo.Name)
	}

	obj := &Object{
		Name:                 fo.Name,
		Status:               status,
		GenerateDisplayTrait: fo.GenerateDisplayTrait,
		MustUse:              fo.MustUse,
		Derives:              fo.Derives,
	}

	for j, fm := range fo.Members {
		rule, err := buildMember(fm)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: member[%d]", fo.Name, j)
		}
		obj.Members = append(obj.Members, rule)
	}
	return obj, nil
}

func buildMember(fm fileMember) (MemberConfig, error) {
	var rule MemberConfig

	switch {
	case fm.Name != "" && fm.Pattern != "":
		return rule, errors.New("name and pattern are mutually exclusive")
	case fm.Name != "":
		rule.Ident = Ident{Name: fm.Name}
	case fm.Pattern != "":
		re, err := regexp.Compile("^(?:" + fm.Pattern + ")$")
		if err != nil {
			return rule, errors.Wrapf(err, "pattern %q", fm.Pattern)
		}
		rule.Ident = Ident{Pattern: re}
	default:
		return rule, errors.New("name or pattern is required")
	}

	rule.Alias = fm.Alias
	rule.Ignore = fm.Ignore

	var err error
	if rule.Version, err = library.ParseOptionalVersion(fm.Version); err != nil {
		return rule, errors.Wrap(err, "version")
	}
	if rule.DeprecatedVersion, err = library.ParseOptionalVersion(fm.DeprecatedVersion); err != nil {
		return rule, errors.Wrap(err, "deprecated_version")
	}
	return rule, nil
}
