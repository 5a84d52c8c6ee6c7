package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rounds/internal/app"
	"github.com/zjrosen/rounds/internal/config"
	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/mode/shared"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// envPrefix namespaces environment overrides, e.g. ROUNDS_API_HOSPITAL_CODE.
const envPrefix = "ROUNDS"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Doctor self-registration for the hospital management system",
	Long: `A terminal user interface for signing up as a doctor with a hospital.

Verify your email with a one-time passcode, pick your department and sign up.
The issued session token is stored locally under "doctortoken".`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .rounds/config.yaml, then ~/.config/rounds/config.yaml)")
	rootCmd.PersistentFlags().String("backend-url", "",
		"hospital backend base URL")
	rootCmd.PersistentFlags().String("hospital-code", "",
		"hospital code sent with department and registration requests")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log (or $ROUNDS_LOG)")

	// Bind flags to viper
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("backend-url"))
	_ = viper.BindPFlag("api.hospital_code", rootCmd.PersistentFlags().Lookup("hospital-code"))
}

func initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	configureViper(viper.GetViper())

	home, _ := os.UserHomeDir()
	if path := resolveConfigFile(cfgFile, home); path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .rounds/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
				viper.SetConfigFile(config.DefaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
	cfg.Session.DBPath = config.ExpandHome(cfg.Session.DBPath)
	cfg.Tracing.FilePath = config.ExpandHome(cfg.Tracing.FilePath)
}

// configureViper registers defaults for every key and ROUNDS_* overrides.
// AutomaticEnv only resolves keys viper already knows, hence the defaults.
func configureViper(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.hospital_code", defaults.API.HospitalCode)
	v.SetDefault("api.timeout", defaults.API.Timeout)
	v.SetDefault("cache.departments_ttl", defaults.Cache.DepartmentsTTL)
	v.SetDefault("session.db_path", defaults.Session.DBPath)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	v.SetDefault("debug", defaults.Debug)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// resolveConfigFile picks the config file to read.
// Lookup order:
// 1. --config flag
// 2. .rounds/config.yaml (current directory)
// 3. ~/.config/rounds/config.yaml (user config)
// An empty result means none exists yet.
func resolveConfigFile(flag, home string) string {
	if flag != "" {
		return flag
	}
	if _, err := os.Stat(config.DefaultConfigPath); err == nil {
		return config.DefaultConfigPath
	}
	if home != "" {
		user := filepath.Join(home, ".config", "rounds", "config.yaml")
		if _, err := os.Stat(user); err == nil {
			return user
		}
	}
	return ""
}

// configFileUsed is where `config set` writes: the file that was read, or the
// default location when none was.
func configFileUsed() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return config.DefaultConfigPath
}

// initLogging enables the file logger when --debug or ROUNDS_DEBUG is set.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && !cfg.Debug {
		return func() {}, nil
	}
	logPath := os.Getenv("ROUNDS_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "rounds starting", "version", version, "config", viper.ConfigFileUsed(), "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging("rounds")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cfg.ValidateTUI(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(ctx); closeErr != nil {
			log.ErrorErr(log.CatConfig, "shutdown failed", closeErr)
		}
	}()

	services := mode.Services{
		API:       rt.Directory,
		Sessions:  rt.Sessions,
		Config:    &cfg,
		Clock:     shared.RealClock{},
		Clipboard: shared.SystemClipboard{},
	}

	p := tea.NewProgram(
		app.New(services),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
