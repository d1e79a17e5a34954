package sift

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().validate(); err != nil {
		t.Fatalf("DefaultConfig().validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c Config) Config
		wantErr error
	}{
		{
			name:    "bad upsampling",
			mutate:  func(c Config) Config { c.Upsampling = 3; return c },
			wantErr: ErrBadUpsampling,
		},
		{
			name:    "zero octaves",
			mutate:  func(c Config) Config { c.NOctaves = 0; return c },
			wantErr: ErrBadConfig,
		},
		{
			name:    "zero scales",
			mutate:  func(c Config) Config { c.NScales = 0; return c },
			wantErr: ErrBadConfig,
		},
		{
			name:    "zero hist bins",
			mutate:  func(c Config) Config { c.NHist = 0; return c },
			wantErr: ErrBadConfig,
		},
		{
			name:    "zero orientation bins",
			mutate:  func(c Config) Config { c.NOri = 0; return c },
			wantErr: ErrBadConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.mutate(DefaultConfig())
			err := cfg.validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validate() = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDeriveKWithNScales(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NScales = 3
	der := cfg.derive()

	if got, want := math.Pow(der.k, float64(cfg.NScales)), 2.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("k^n_scales = %v, want %v", got, want)
	}
	if got, want := der.deltaMin, 1.0/float64(cfg.Upsampling); got != want {
		t.Errorf("deltaMin = %v, want %v", got, want)
	}
}
