package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "zero config takes defaults",
			config:  Config{},
			wantErr: nil,
		},
		{
			name:    "compact dense with highlighting",
			config:  Config{ViewMode: ModeCompact, Density: DensityDense, ShowHighlight: true},
			wantErr: nil,
		},
		{
			name:    "unknown view mode returns ErrInvalidViewMode",
			config:  Config{ViewMode: "grid"},
			wantErr: ErrInvalidViewMode,
		},
		{
			name:    "unknown density returns ErrInvalidDensity",
			config:  Config{Density: "cozy"},
			wantErr: ErrInvalidDensity,
		},
		{
			name:    "negative TTL returns ErrInvalidTTL",
			config:  Config{NewTagTTL: -time.Second},
			wantErr: ErrInvalidTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{Density: DensityDense}.WithDefaults()
	want := Config{ViewMode: ModeTable, Density: DensityDense, NewTagTTL: DefaultNewTagTTL}
	if got != want {
		t.Fatalf("WithDefaults() = %+v, want %+v", got, want)
	}
}

func TestParse(t *testing.T) {
	if d, err := ParseDirection("desc"); err != nil || d != Desc {
		t.Fatalf("ParseDirection(desc) = %q, %v", d, err)
	}
	if _, err := ParseDirection("up"); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("ParseDirection(up) error = %v", err)
	}
	if m, err := ParseViewMode("card"); err != nil || m != ModeCard {
		t.Fatalf("ParseViewMode(card) = %q, %v", m, err)
	}
	if d, err := ParseDensity("dense"); err != nil || d != DensityDense {
		t.Fatalf("ParseDensity(dense) = %q, %v", d, err)
	}
	if h, err := ParseHighlight("none"); err != nil || h != HighlightNone {
		t.Fatalf("ParseHighlight(none) = %q, %v", h, err)
	}
	if h, err := ParseHighlight("danger"); err != nil || h != HighlightDanger {
		t.Fatalf("ParseHighlight(danger) = %q, %v", h, err)
	}
	if _, err := ParseHighlight("pink"); !errors.Is(err, ErrInvalidHighlight) {
		t.Fatalf("ParseHighlight(pink) error = %v", err)
	}
}

func TestViewStateEffectiveDensity(t *testing.T) {
	tests := []struct {
		state ViewState
		want  Density
	}{
		{ViewState{Mode: ModeTable, Density: DensityComfortable}, DensityComfortable},
		{ViewState{Mode: ModeCard, Density: DensityDense}, DensityDense},
		{ViewState{Mode: ModeCompact, Density: DensityComfortable}, DensityDense},
	}
	for _, tt := range tests {
		if got := tt.state.EffectiveDensity(); got != tt.want {
			t.Errorf("%+v.EffectiveDensity() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFilterValuesActive(t *testing.T) {
	f := FilterValues{"role": "admin", "team": FilterAll, "status": ""}
	if n := f.ActiveCount(); n != 1 {
		t.Fatalf("ActiveCount() = %d, want 1", n)
	}
	active := f.Active()
	if len(active) != 1 || active["role"] != "admin" {
		t.Fatalf("Active() = %v", active)
	}
}

func TestRowActionHiddenFor(t *testing.T) {
	hidden := RowAction[int]{ID: "x", Hidden: func(n int) bool { return n > 1 }}
	if hidden.HiddenFor(1) || !hidden.HiddenFor(2) {
		t.Fatal("Hidden predicate not applied")
	}
	divider := RowAction[int]{Divider: true, Hidden: func(int) bool { return true }}
	if divider.HiddenFor(2) {
		t.Fatal("dividers are never hidden")
	}
}
