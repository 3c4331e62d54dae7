package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SBSWP/itb-100-thermal-battery/app"
	"github.com/SBSWP/itb-100-thermal-battery/core/economics"
)

var economicsCmd = &cobra.Command{
	Use:   "economics",
	Short: "Run both cycles and print the lifecycle cost report as JSON",
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

		discharge, err := svc.RunDischarge()
		if err != nil {
			return err
		}
		charge, err := svc.RunCharge()
		if err != nil {
			return err
		}
		report, err := svc.Assess(discharge, charge)
		if err != nil {
			return err
		}
		assist := economics.HeatPumpAssist(discharge.TotalEnergyKWh, cfg.Economics.ElectricityUSDPerKWh)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		for _, season := range assist {
			fmt.Printf("%s: %d cycles at %.1f°C, COP %.2f, $%.0f/season\n",
				season.Season, season.Cycles, season.AvgOutdoorC, season.COP, season.SavingsUSD)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(economicsCmd)
}
