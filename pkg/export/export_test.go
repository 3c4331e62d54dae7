package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SBSWP/itb-100-thermal-battery/core/cycle"
)

func sampleResult() *cycle.Result {
	return &cycle.Result{
		RunID:          "run-1",
		Mode:           cycle.ModeDischarge,
		Stop:           cycle.StopDepleted,
		TimeH:          []float64{0.1, 0.2},
		MediumTempC:    []float64{58, 57.9},
		OutletC:        []float64{45.4, 45.3},
		PowerKW:        []float64{1.69, 1.68},
		AvailableKW:    []float64{0, 0},
		SOC:            []float64{0.9, 0.8},
		SolidFraction:  []float64{0.1, 0.2},
		TotalEnergyKWh: 15.8,
		AvgPowerKW:     1.68,
		DurationHours:  9.4,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus two samples", len(rows))
	}
	wantHeader := "time_h,medium_temp_c,outlet_temp_c,power_kw,available_kw,soc,solid_fraction"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Fatalf("header = %q, want %q", got, wantHeader)
	}
	if rows[1][0] != "0.1" || rows[2][6] != "0.2" {
		t.Fatalf("sample rows differ: %v", rows[1:])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["run_id"] != "run-1" || decoded["mode"] != "discharge" || decoded["stop_reason"] != "depleted" {
		t.Fatalf("summary fields differ: %v", decoded)
	}
	if decoded["total_energy_kwh"].(float64) != 15.8 {
		t.Fatalf("total energy = %v", decoded["total_energy_kwh"])
	}
	if series := decoded["soc"].([]any); len(series) != 2 {
		t.Fatalf("soc series length = %d", len(series))
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := sampleResult()

	paths, err := Save(dir, res, []string{"csv", "json"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want two files", paths)
	}
	for _, p := range paths {
		if !strings.HasPrefix(filepath.Base(p), "discharge_run-1.") {
			t.Fatalf("unexpected file name %s", p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	if _, err := Save(t.TempDir(), sampleResult(), []string{"xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
