package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bonilindsley/rcpilot/internal/config"
	"github.com/bonilindsley/rcpilot/internal/log"
	"github.com/bonilindsley/rcpilot/internal/tui"
)

var version = "dev"

var (
	flagConfig   string
	flagRoot     string
	flagRCAddr   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "rcpilot",
	Short:         "Terminal cockpit for rclone's remote control server",
	Long:          "rcpilot drives a local `rclone rcd` from one screen: a control panel\nfor the server process, a directory tree, and a vim-style command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := log.Configure(log.Config{
			Level: cfg.LogLevel,
			Path:  cfg.LogPath,
		}); err != nil {
			return err
		}
		logger := log.Base()
		logger.Info().Str("version", version).Msg("starting")

		model, err := tui.New(cfg)
		if err != nil {
			return err
		}

		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if m, ok := final.(tui.Model); ok {
			m.Shutdown()
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rcpilot version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rcpilot", version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println("config file:", config.ConfigPath())
		fmt.Println("rc_addr:    ", cfg.RCAddr)
		fmt.Println("root_dir:   ", cfg.RootDir)
		if cfg.RcloneBinary != "" {
			fmt.Println("rclone:     ", cfg.RcloneBinary)
		}
		for source, target := range cfg.Remaps {
			fmt.Printf("remap:       %s -> %s\n", source, target)
		}
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	// Flags override file values.
	if flagRoot != "" {
		cfg.RootDir = flagRoot
	}
	if flagRCAddr != "" {
		cfg.RCAddr = flagRCAddr
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")
	rootCmd.Flags().StringVar(&flagRoot, "root", "", "directory tree root")
	rootCmd.Flags().StringVar(&flagRCAddr, "rc-addr", "", "rc server listen address")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd, configCmd)
}
