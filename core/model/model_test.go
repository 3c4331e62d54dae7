package model

import (
	"math"
	"testing"
)

func TestDefaultSpecsValidate(t *testing.T) {
	if err := DefaultSpecs().Validate(); err != nil {
		t.Fatalf("default specs should validate: %v", err)
	}
}

func TestSpecsValidateRejectsNonPositive(t *testing.T) {
	s := DefaultSpecs()
	s.MassKg = 0
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for zero mass")
	}
	s = DefaultSpecs()
	s.UAWPerK = -1
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for negative UA")
	}
}

func TestCapacityJ(t *testing.T) {
	s := DefaultSpecs()
	want := s.CapacityKWh * 3.6e6
	if got := s.CapacityJ(); math.Abs(got-want) > 1 {
		t.Fatalf("CapacityJ = %f, want %f", got, want)
	}
}

func TestChargedState(t *testing.T) {
	s := DefaultSpecs()
	st := NewChargedState(s)
	if st.TempC != s.PhaseChangeTempC {
		t.Fatalf("charged state temp = %f, want plateau %f", st.TempC, s.PhaseChangeTempC)
	}
	if st.SolidFraction != 0.05 {
		t.Fatalf("charged state solid fraction = %f, want nucleation seed 0.05", st.SolidFraction)
	}
	if soc := st.StateOfCharge(s); soc != 1 {
		t.Fatalf("charged state SOC = %f, want 1", soc)
	}
}

func TestDischargedState(t *testing.T) {
	s := DefaultSpecs()
	st := NewDischargedState(s, 20)
	if st.TempC != 20 {
		t.Fatalf("discharged state temp = %f, want ambient 20", st.TempC)
	}
	if st.SolidFraction != 1 {
		t.Fatalf("discharged state solid fraction = %f, want 1", st.SolidFraction)
	}
	if soc := st.StateOfCharge(s); soc != 0 {
		t.Fatalf("discharged state SOC = %f, want 0", soc)
	}
}

func TestStateOfChargeClamped(t *testing.T) {
	s := DefaultSpecs()
	st := State{StoredJ: -1000}
	if soc := st.StateOfCharge(s); soc != 0 {
		t.Fatalf("negative energy SOC = %f, want clamp to 0", soc)
	}
	st.StoredJ = 2 * s.CapacityJ()
	if soc := st.StateOfCharge(s); soc != 1 {
		t.Fatalf("excess energy SOC = %f, want clamp to 1", soc)
	}
}

func TestPhaseBudgets(t *testing.T) {
	s := DefaultSpecs()
	full := s.MassKg * s.LatentHeatJPerKg

	st := State{SolidFraction: 1}
	if b := st.LatentBudgetJ(s); b != 0 {
		t.Fatalf("fully solid latent budget = %f, want 0", b)
	}
	if b := st.MeltBudgetJ(s); math.Abs(b-full) > 1 {
		t.Fatalf("fully solid melt budget = %f, want %f", b, full)
	}

	st.SolidFraction = 0.25
	want := 0.75 * full
	if b := st.LatentBudgetJ(s); math.Abs(b-want) > 1 {
		t.Fatalf("latent budget = %f, want %f", b, want)
	}
}
