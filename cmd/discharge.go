package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SBSWP/itb-100-thermal-battery/app"
)

var dischargeCmd = &cobra.Command{
	Use:   "discharge",
	Short: "Simulate a full discharge into the hydronic loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.RunDischarge()
		if err != nil {
			return err
		}
		fmt.Printf("discharge %s: %.2f kWh over %.2f h, avg %.2f kW, stop=%s\n",
			res.RunID, res.TotalEnergyKWh, res.DurationHours, res.AvgPowerKW, res.Stop)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dischargeCmd)
}
