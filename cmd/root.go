// Package cmd defines the itb100 command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SBSWP/itb-100-thermal-battery/app"
	"github.com/SBSWP/itb-100-thermal-battery/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "itb100",
	Short: "Charge and discharge analysis for the ITB-100 thermal battery",
	Long: `itb100 simulates the ITB-100 phase change thermal battery with an
effectiveness based heat exchanger model, runs a full discharge and a solar
charge, and reports the lifecycle economics of the system.`,
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()
		return svc.Run(ctx)
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "path to the configuration file")
}

// loadConfig reads the configuration file, falling back to defaults when the
// default path is absent and the flag was not set explicitly.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	return config.Load(cfgPath)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
