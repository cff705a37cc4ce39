package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/store"
)

var (
	cfgFile         string
	ProjectOverride string
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "manuscript")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MANUSCRIPT")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "manuscript"))
	viper.SetDefault("project", "manuscript")
	viper.SetDefault("store", string(store.KindYAML))
	viper.SetDefault("author", "")
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("debug_assertions", false)
	viper.SetDefault("autosave_delay", store.DefaultAutosaveDelay)
	viper.SetDefault("search_index", true)

	_ = viper.ReadInConfig()
}

// NewLogger builds the process logger. Output goes to stderr so command
// output on stdout stays clean.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel // Keep it quiet unless there are issues.
	}
	logger.SetLevel(level)
	return logger
}

// ProjectName is the configured project, or the --project override.
func ProjectName() string {
	if ProjectOverride != "" {
		return ProjectOverride
	}
	return viper.GetString("project")
}

// AutosaveDelay is the quiet window used by the interactive shell.
func AutosaveDelay() time.Duration {
	return viper.GetDuration("autosave_delay")
}

func serviceConfig(dataDir, name string) *service.Config {
	cfg := &service.Config{
		Author:          viper.GetString("author"),
		DebugAssertions: viper.GetBool("debug_assertions"),
	}
	if viper.GetBool("search_index") {
		cfg.IndexPath = filepath.Join(dataDir, name+".index.db")
	}
	return cfg
}

func openStore() (store.Store, string, string, error) {
	dataDir := viper.GetString("data_dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, "", "", fmt.Errorf("create data dir: %w", err)
	}
	name := ProjectName()
	st, err := store.Open(store.Kind(viper.GetString("store")), dataDir, name)
	if err != nil {
		return nil, "", "", err
	}
	return st, dataDir, name, nil
}

// InitService opens the configured project.
func InitService(logger *logrus.Logger) (*service.Service, error) {
	st, dataDir, name, err := openStore()
	if err != nil {
		return nil, err
	}
	entry := logger.WithField("project", name)
	svc, err := service.Open(serviceConfig(dataDir, name), st, entry)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open project %q: %w", name, err)
	}
	return svc, nil
}

// CreateService starts a new project under the configured name.
func CreateService(logger *logrus.Logger, title, author string) (*service.Service, error) {
	st, dataDir, name, err := openStore()
	if err != nil {
		return nil, err
	}
	entry := logger.WithField("project", name)
	svc, err := service.Create(serviceConfig(dataDir, name), st, entry, title, author)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("create project %q: %w", name, err)
	}
	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	if cmd.PersistentFlags().Lookup("config") == nil {
		cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/manuscript/config.yaml)")
	} else {
		cmd.PersistentFlags().StringVar(&cfgFile, "manuscript-config", "", "config file (default is $HOME/.config/manuscript/config.yaml)")
	}
	cmd.PersistentFlags().StringVarP(&ProjectOverride, "project", "P", "", "Project name (overrides the configured project)")
}
