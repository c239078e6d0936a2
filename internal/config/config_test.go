package config

import "testing"

func TestSlottingWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights SlottingWeights
		wantErr bool
	}{
		{"defaults sum to one", DefaultWeights(), false},
		{"all in one factor", SlottingWeights{Velocity: 1.0}, false},
		{"sum above one", SlottingWeights{Velocity: 0.9, ABCClass: 0.25}, true},
		{"sum below one", SlottingWeights{Velocity: 0.5}, true},
		{"all zero", SlottingWeights{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCosts(t *testing.T) {
	costs := DefaultCosts()
	if costs.PickerHourlyRate <= 0 || costs.ForkliftHourlyRate <= 0 {
		t.Error("hourly rates must be positive")
	}
	if costs.PickTimePerMeterMin <= 0 {
		t.Error("pick time per meter must be positive")
	}
	if costs.AnnualPickVolume <= 0 {
		t.Error("annual pick volume must be positive")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Server.Port == "" {
		t.Error("server port default missing")
	}
	if err := cfg.Slotting.Weights.Validate(); err != nil {
		t.Errorf("default slotting weights invalid: %v", err)
	}
	if cfg.Slotting.Workers < 1 {
		t.Errorf("workers = %d, want >= 1", cfg.Slotting.Workers)
	}
}
