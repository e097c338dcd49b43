package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"keynav/internal/mnemonic"
	"keynav/internal/ui"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "keynav",
	Short: "Mnemonic letter-hint navigation demo",
	Long: `keynav shows keyboard-driven mnemonic navigation over a document tree:
arm the session to reveal letter hints next to tagged elements, press a
letter to activate its element, and pick by number when letters collide.

Hold emulation: terminals report no bare modifier press/release, so the
demo toggles the armed state with one key instead.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// The TUI owns the terminal; log to a file instead of stderr.
		cfg.OutputPaths = []string{filepath.Join(os.TempDir(), "keynav.log")}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		model := ui.NewAppModel(opts, logger)
		p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run program: %w", err)
		}
		return nil
	},
}

// loadOptions merges the config file (if any) over defaults.
func loadOptions() (mnemonic.Options, error) {
	v := viper.New()
	v.SetDefault("attribute_name", mnemonic.DefaultAttributeName)
	v.SetDefault("active_hint_class", mnemonic.DefaultActiveHintClass)
	v.SetDefault("color", "")
	v.SetDefault("text_color", "")
	v.SetDefault("animation_duration", mnemonic.DefaultAnimationDuration)
	v.SetDefault("modifier_key", mnemonic.DefaultModifierKey)
	v.SetDefault("cancel_key", mnemonic.DefaultCancelKey)
	v.SetEnvPrefix("keynav")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return mnemonic.Options{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "keynav"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return mnemonic.Options{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return mnemonic.Options{
		AttributeName:     v.GetString("attribute_name"),
		ActiveHintClass:   v.GetString("active_hint_class"),
		Color:             v.GetString("color"),
		TextColor:         v.GetString("text_color"),
		AnimationDuration: v.GetDuration("animation_duration"),
		ModifierKey:       v.GetString("modifier_key"),
		CancelKey:         v.GetString("cancel_key"),
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: keynav/config.yaml in the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
