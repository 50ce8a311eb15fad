// Config loading for the gridview CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/gridview/internal/rowstore"
	"github.com/mesh-intelligence/gridview/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "GRIDVIEW"

	cfgKeyDataDir    = "data_dir"
	cfgKeyIDField    = "id_field"
	cfgKeyMode       = "view.mode"
	cfgKeyDensity    = "view.density"
	cfgKeyHighlight  = "view.highlight"
	cfgKeyTagNewRows = "view.tag_new_rows"
	cfgKeyNewTagTTL  = "view.new_tag_ttl"
	cfgKeyLogLevel   = "log.level"
	cfgKeyLogFormat  = "log.format"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# gridview configuration

# Data directory holding <dataset>.jsonl files (overridable by --data-dir)
# data_dir:

# Record field used as the row identity
id_field: id

view:
  mode: table          # table | card | compact
  density: comfortable # comfortable | dense
  highlight: false
  tag_new_rows: false
  new_tag_ttl: 3s

log:
  level: warn   # trace | debug | info | warn | error
  format: text  # text | json
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, &userError{err: fmt.Errorf("read config: %w", err)}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyIDField, rowstore.DefaultIDField)
	v.SetDefault(cfgKeyMode, string(d.ViewMode))
	v.SetDefault(cfgKeyDensity, string(d.Density))
	v.SetDefault(cfgKeyHighlight, d.ShowHighlight)
	v.SetDefault(cfgKeyTagNewRows, d.TagNewRows)
	v.SetDefault(cfgKeyNewTagTTL, d.NewTagTTL)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "text")
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// engineConfig extracts the engine settings from v.
func engineConfig(v *viper.Viper) (types.Config, error) {
	mode, err := types.ParseViewMode(v.GetString(cfgKeyMode))
	if err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", cfgKeyMode, err)
	}
	density, err := types.ParseDensity(v.GetString(cfgKeyDensity))
	if err != nil {
		return types.Config{}, fmt.Errorf("config %s: %w", cfgKeyDensity, err)
	}
	cfg := types.Config{
		ViewMode:      mode,
		Density:       density,
		ShowHighlight: v.GetBool(cfgKeyHighlight),
		TagNewRows:    v.GetBool(cfgKeyTagNewRows),
		NewTagTTL:     v.GetDuration(cfgKeyNewTagTTL),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// configKeys lists every key the CLI reads, in display order.
var configKeys = []string{
	cfgKeyDataDir,
	cfgKeyIDField,
	cfgKeyMode,
	cfgKeyDensity,
	cfgKeyHighlight,
	cfgKeyTagNewRows,
	cfgKeyNewTagTTL,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := c.resolveDataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			values := map[string]string{"config_dir": c.configDir}
			for _, k := range configKeys {
				values[k] = c.cfg.GetString(k)
			}
			values[cfgKeyDataDir] = dataDir

			out := cmd.OutOrStdout()
			if c.flagJSON {
				data, err := json.MarshalIndent(values, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal config: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "%s: %s\n", k, values[k])
			}
			return nil
		},
	}
}
