// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"harvestx/internal/core/domain"
	"harvestx/internal/platform/logx"
)

// EnvPrefix es el prefijo de todas las variables de entorno.
const EnvPrefix = "HARVESTX_"

type Config struct {
	Core   Core   `yaml:"core" json:"core"`
	Output Output `yaml:"output" json:"output"`

	// Options se aplican a todos los módulos habilitados (ej: th_host).
	Options map[string]string `yaml:"options" json:"options"`

	// Modules opciones por módulo; tienen prioridad sobre Options.
	Modules map[string]map[string]string `yaml:"modules" json:"modules"`
}

type Core struct {
	Target   string   `yaml:"target" json:"target"`
	Enabled  []string `yaml:"enabled" json:"enabled"`
	Workers  int      `yaml:"workers" json:"workers"`
	TimeoutS int      `yaml:"timeout" json:"timeout"` // segundos (0 = sin timeout)
	LogLevel string   `yaml:"log_level" json:"log_level"`
}

type Output struct {
	Dir           string `yaml:"dir" json:"dir"`
	JSON          bool   `yaml:"json" json:"json"`
	Stream        bool   `yaml:"stream" json:"stream"`
	TableDisabled bool   `yaml:"no_table" json:"no_table"`
	DBPath        string `yaml:"db" json:"db"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Enabled:  []string{"theharvester"},
			Workers:  4,
			TimeoutS: 0,
			LogLevel: "info",
		},
		Output: Output{
			Dir:  "harvestx_out",
			JSON: true,
		},
		Options: map[string]string{},
		Modules: map[string]map[string]string{},
	}
}

// Flags son los valores de línea de comandos antes de fusionarse con la configuración.
type Flags struct {
	ConfigPath string
	Target     string
	Enabled    string
	Workers    int
	TimeoutS   int
	LogLevel   string

	OutDir  string
	JSON    bool
	Stream  bool
	NoTable bool
	DBPath  string

	THHost    string
	THPort    string
	THSources string

	// Options pares key=value o module.key=value
	Options []string
}

// Register declara los flags en fs con los valores por defecto de DefaultConfig.
func (f *Flags) Register(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&f.Target, "target", "t", "", "Target domain (e.g., example.com)")
	fs.StringVarP(&f.Enabled, "modules", "m", strings.Join(def.Core.Enabled, ","), "Enabled modules, CSV")
	fs.IntVarP(&f.Workers, "workers", "w", def.Core.Workers, "Max modules running at once")
	fs.IntVarP(&f.TimeoutS, "timeout", "T", def.Core.TimeoutS, "Global scan timeout in seconds (0 = none)")
	fs.StringVar(&f.LogLevel, "log-level", def.Core.LogLevel, "Log level: debug, info, warn, error")

	fs.StringVarP(&f.OutDir, "out", "o", def.Output.Dir, "Output directory")
	fs.BoolVar(&f.JSON, "json", def.Output.JSON, "Write the JSON report")
	fs.BoolVar(&f.Stream, "stream", def.Output.Stream, "Stream events as NDJSON while scanning")
	fs.BoolVar(&f.NoTable, "no-table", def.Output.TableDisabled, "Disable table output")
	fs.StringVar(&f.DBPath, "db", def.Output.DBPath, "SQLite database to store events (optional)")

	fs.StringVar(&f.THHost, "th-host", "", "theHarvester service host")
	fs.StringVar(&f.THPort, "th-port", "", "theHarvester service port")
	fs.StringVar(&f.THSources, "th-sources", "", "theHarvester sources, CSV")

	fs.StringArrayVarP(&f.Options, "opt", "O", nil, "Module option key=value or module.key=value (repeatable)")
}

// Load construye la configuración: defaults -> archivo YAML -> ENV -> flags.
// fs debe estar ya parseado; solo los flags cambiados sobrescriben.
func Load(fs *pflag.FlagSet, f *Flags, environ []string) (Config, error) {
	cfg := DefaultConfig()

	if f.ConfigPath != "" {
		if err := LoadFile(&cfg, f.ConfigPath); err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg, environ)

	if err := applyFlags(&cfg, fs, f); err != nil {
		return Config{}, err
	}

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile fusiona un archivo YAML sobre cfg.
func LoadFile(cfg *Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: config path %q is a directory", domain.ErrInvalidConfig, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, cfg)
	default:
		err = yaml.Unmarshal(raw, cfg)
	}
	if err != nil {
		return fmt.Errorf("%w: parse %q: %v", domain.ErrInvalidConfig, path, err)
	}
	return nil
}

// ApplyEnv aplica variables HARVESTX_* de environ (formato de os.Environ).
// HARVESTX_OPT_<KEY> define la opción global <key> en minúsculas
// (ej: HARVESTX_OPT_TH_HOST -> th_host).
func ApplyEnv(cfg *Config, environ []string) {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			env[strings.TrimPrefix(name, EnvPrefix)] = value
		}
	}

	if v, ok := env["TARGET"]; ok {
		cfg.Core.Target = v
	}
	if v, ok := env["MODULES"]; ok {
		cfg.Core.Enabled = splitCSV(v)
	}
	if v, ok := env["WORKERS"]; ok {
		cfg.Core.Workers = parseInt(v, cfg.Core.Workers)
	}
	if v, ok := env["TIMEOUT"]; ok {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v, ok := env["LOG_LEVEL"]; ok {
		cfg.Core.LogLevel = v
	}
	if v, ok := env["OUTPUT_DIR"]; ok {
		cfg.Output.Dir = v
	}
	if v, ok := env["JSON"]; ok {
		cfg.Output.JSON = parseBool(v)
	}
	if v, ok := env["STREAM"]; ok {
		cfg.Output.Stream = parseBool(v)
	}
	if v, ok := env["NO_TABLE"]; ok {
		cfg.Output.TableDisabled = parseBool(v)
	}
	if v, ok := env["DB"]; ok {
		cfg.Output.DBPath = v
	}

	for name, v := range env {
		if key, found := strings.CutPrefix(name, "OPT_"); found && key != "" {
			cfg.SetOption("", strings.ToLower(key), v)
		}
	}
}

func applyFlags(cfg *Config, fs *pflag.FlagSet, f *Flags) error {
	changed := fs.Changed

	if changed("target") {
		cfg.Core.Target = f.Target
	}
	if changed("modules") {
		cfg.Core.Enabled = splitCSV(f.Enabled)
	}
	if changed("workers") {
		cfg.Core.Workers = f.Workers
	}
	if changed("timeout") {
		cfg.Core.TimeoutS = f.TimeoutS
	}
	if changed("log-level") {
		cfg.Core.LogLevel = f.LogLevel
	}
	if changed("out") {
		cfg.Output.Dir = f.OutDir
	}
	if changed("json") {
		cfg.Output.JSON = f.JSON
	}
	if changed("stream") {
		cfg.Output.Stream = f.Stream
	}
	if changed("no-table") {
		cfg.Output.TableDisabled = f.NoTable
	}
	if changed("db") {
		cfg.Output.DBPath = f.DBPath
	}
	if changed("th-host") {
		cfg.SetOption("", "th_host", f.THHost)
	}
	if changed("th-port") {
		cfg.SetOption("", "th_port", f.THPort)
	}
	if changed("th-sources") {
		cfg.SetOption("", "th_sources", f.THSources)
	}

	for _, raw := range f.Options {
		module, key, value, err := ParseOption(raw)
		if err != nil {
			return err
		}
		cfg.SetOption(module, key, value)
	}
	return nil
}

// ParseOption parsea "key=value" o "module.key=value".
func ParseOption(raw string) (module, key, value string, err error) {
	k, v, ok := strings.Cut(raw, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", "", fmt.Errorf("%w: option %q must be key=value", domain.ErrInvalidConfig, raw)
	}
	if m, rest, found := strings.Cut(k, "."); found {
		if m == "" || rest == "" {
			return "", "", "", fmt.Errorf("%w: option %q must be module.key=value", domain.ErrInvalidConfig, raw)
		}
		return m, rest, v, nil
	}
	return "", k, v, nil
}

// SetOption fija una opción global (module == "") o de un módulo.
func (c *Config) SetOption(module, key, value string) {
	if module == "" {
		if c.Options == nil {
			c.Options = map[string]string{}
		}
		c.Options[key] = value
		return
	}
	if c.Modules == nil {
		c.Modules = map[string]map[string]string{}
	}
	if c.Modules[module] == nil {
		c.Modules[module] = map[string]string{}
	}
	c.Modules[module][key] = value
}

// ModuleOptions retorna las opciones efectivas de un módulo.
func (c Config) ModuleOptions(module string) map[string]string {
	out := make(map[string]string, len(c.Options)+len(c.Modules[module]))
	for k, v := range c.Options {
		out[k] = v
	}
	for k, v := range c.Modules[module] {
		out[k] = v
	}
	return out
}

// AllModuleOptions retorna las opciones efectivas de cada módulo habilitado.
func (c Config) AllModuleOptions() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.Core.Enabled))
	for _, name := range c.Core.Enabled {
		out[name] = c.ModuleOptions(name)
	}
	return out
}

// Validate verifica los valores que no se pueden corregir en normalize.
func (c Config) Validate() error {
	if len(c.Core.Enabled) == 0 {
		return fmt.Errorf("%w: no modules enabled", domain.ErrInvalidConfig)
	}
	switch strings.ToLower(c.Core.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidConfig, c.Core.LogLevel)
	}
	return nil
}

func normalize(c *Config) {
	c.Core.Target = strings.TrimSpace(strings.ToLower(strings.TrimSuffix(strings.TrimSpace(c.Core.Target), ".")))
	if c.Core.Workers < 1 {
		c.Core.Workers = 1
	}
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "harvestx_out"
	}
	if c.Options == nil {
		c.Options = map[string]string{}
	}
	if c.Modules == nil {
		c.Modules = map[string]map[string]string{}
	}
}

// Level retorna el nivel de log configurado.
func (c Config) Level() logx.Level {
	return logx.ParseLevel(c.Core.LogLevel)
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Timeout devuelve el timeout global como time.Duration (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	if c.Core.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Core.TimeoutS) * time.Second
}

// Helpers

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
