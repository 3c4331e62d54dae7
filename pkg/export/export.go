// Package export writes cycle results to CSV and JSON at the caller's
// boundary. Nothing here runs inside the simulation loop.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/SBSWP/itb-100-thermal-battery/core/cycle"
)

// WriteCSV writes the result time series to w with a header row.
func WriteCSV(w io.Writer, res *cycle.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"time_h", "medium_temp_c", "outlet_temp_c", "power_kw", "available_kw", "soc", "solid_fraction"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < res.Samples(); i++ {
		rec := []string{
			fmtFloat(res.TimeH[i]),
			fmtFloat(res.MediumTempC[i]),
			fmtFloat(res.OutletC[i]),
			fmtFloat(res.PowerKW[i]),
			fmtFloat(res.AvailableKW[i]),
			fmtFloat(res.SOC[i]),
			fmtFloat(res.SolidFraction[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonResult is the JSON projection of a cycle result.
type jsonResult struct {
	RunID          string    `json:"run_id"`
	Mode           string    `json:"mode"`
	StopReason     string    `json:"stop_reason"`
	TotalEnergyKWh float64   `json:"total_energy_kwh"`
	AvgPowerKW     float64   `json:"avg_power_kw"`
	DurationHours  float64   `json:"duration_hours"`
	TimeH          []float64 `json:"time_h"`
	MediumTempC    []float64 `json:"medium_temp_c"`
	OutletC        []float64 `json:"outlet_temp_c"`
	PowerKW        []float64 `json:"power_kw"`
	AvailableKW    []float64 `json:"available_kw"`
	SOC            []float64 `json:"soc"`
	SolidFraction  []float64 `json:"solid_fraction"`
}

// WriteJSON writes the full result, summaries included, to w.
func WriteJSON(w io.Writer, res *cycle.Result) error {
	enc := json.NewEncoder(w)
	return enc.Encode(jsonResult{
		RunID:          res.RunID,
		Mode:           res.Mode.String(),
		StopReason:     res.Stop.String(),
		TotalEnergyKWh: res.TotalEnergyKWh,
		AvgPowerKW:     res.AvgPowerKW,
		DurationHours:  res.DurationHours,
		TimeH:          res.TimeH,
		MediumTempC:    res.MediumTempC,
		OutletC:        res.OutletC,
		PowerKW:        res.PowerKW,
		AvailableKW:    res.AvailableKW,
		SOC:            res.SOC,
		SolidFraction:  res.SolidFraction,
	})
}

// Save writes the result into dir in the requested formats ("csv", "json")
// and returns the created file paths. The directory is created on demand.
func Save(dir string, res *cycle.Result, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, res.Mode.String()+"_"+res.RunID+"."+format)
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		switch format {
		case "csv":
			err = WriteCSV(f, res)
		case "json":
			err = WriteJSON(f, res)
		default:
			err = fmt.Errorf("unsupported export format: %s", format)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
