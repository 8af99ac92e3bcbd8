// Package calibration holds the immutable per-variant vehicle records the
// controller consumes at start-up. Records come from the built-in table or
// from a YAML file overriding it; they never change after Resolve.
package calibration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BusAbsent marks a channel the variant does not carry at all.
const BusAbsent = -1

// Variant identifies one vehicle build within the supported family.
type Variant string

const (
	VariantSedan     Variant = "sedan"
	VariantSedanHEV  Variant = "sedan_hev"
	VariantSUV       Variant = "suv"
	VariantCrossover Variant = "crossover"
	VariantHatch     Variant = "hatch"
	VariantEV        Variant = "ev"
	VariantGrand     Variant = "grand"
	VariantGrand70   Variant = "grand_70"
	VariantGrand80   Variant = "grand_80"
	VariantGrand90   Variant = "grand_90"
	VariantGrand90L  Variant = "grand_90_l"
)

// Record is one variant's calibration. Bus indices refer to logical CAN
// buses; 0 is the primary bus the controller always transmits on.
type Record struct {
	Variant    Variant `yaml:"variant"`
	MassKg     float64 `yaml:"mass_kg"`
	WheelbaseM float64 `yaml:"wheelbase_m"`
	SteerRatio float64 `yaml:"steer_ratio"`

	MaxSteerAngleDeg float64 `yaml:"max_steer_angle_deg"`
	MinSteerSpeedMPS float64 `yaml:"min_steer_speed_mps"`

	SteerBus  int `yaml:"steer_bus"`  // bus carrying the power-steering echo
	AngleBus  int `yaml:"angle_bus"`  // bus carrying the angle sensor
	CruiseBus int `yaml:"cruise_bus"` // bus carrying native cruise, BusAbsent if none

	PremiumCluster       bool `yaml:"premium_cluster"`         // departure warnings use code 1
	LowSpeedFaultProne   bool `yaml:"low_speed_fault_prone"`   // steering unit faults below 60 km/h on bus 0
	HasExtCruiseA        bool `yaml:"has_ext_cruise_a"`
	HasExtCruiseB        bool `yaml:"has_ext_cruise_b"`
	HasLaneFollowDisplay bool `yaml:"has_lane_follow_display"`
	SpeedInMPH           bool `yaml:"speed_in_mph"`

	// Process-wide flags resolved once at construction, outside this core.
	LongControl  bool `yaml:"long_control"`
	OverrideMode bool `yaml:"override_mode"`

	// Seam for the stricter native-cruise staleness check. Ships disabled.
	StrictCruiseLiveness bool `yaml:"strict_cruise_liveness"`
}

// builtin is the factory table. Values a YAML override does not set fall
// back to these.
var builtin = map[Variant]Record{
	VariantSedan:     {MassKg: 1513, WheelbaseM: 2.84, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0, HasLaneFollowDisplay: true},
	VariantSedanHEV:  {MassKg: 1564, WheelbaseM: 2.84, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0, HasLaneFollowDisplay: true},
	VariantSUV:       {MassKg: 1999, WheelbaseM: 2.90, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0},
	VariantCrossover: {MassKg: 1694, WheelbaseM: 2.766, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0},
	VariantHatch:     {MassKg: 1275, WheelbaseM: 2.70, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 12.7, CruiseBus: 0},
	VariantEV:        {MassKg: 1490, WheelbaseM: 2.70, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0},
	VariantGrand:     {MassKg: 1995, WheelbaseM: 3.01, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 16.7, CruiseBus: 0, PremiumCluster: true, LowSpeedFaultProne: true},
	VariantGrand70:   {MassKg: 1735, WheelbaseM: 2.84, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0, PremiumCluster: true},
	VariantGrand80:   {MassKg: 1950, WheelbaseM: 3.01, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0, PremiumCluster: true},
	VariantGrand90:   {MassKg: 2120, WheelbaseM: 3.16, SteerRatio: 16.5, MaxSteerAngleDeg: 90, MinSteerSpeedMPS: 0, CruiseBus: 0, PremiumCluster: true},
	VariantGrand90L:  {MassKg: 2290, WheelbaseM: 3.45, SteerRatio: 16.5, MaxSteerAngleDeg: 120, MinSteerSpeedMPS: 0, CruiseBus: 0, PremiumCluster: true},
}

// Resolve returns the immutable record for a variant. Unknown variants are
// a start-up error; the controller must not run with undefined bounds.
func Resolve(v Variant) (*Record, error) {
	rec, ok := builtin[v]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", v)
	}
	rec.Variant = v
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Validate rejects records that would leave the control loop without
// defined bounds.
func (r *Record) Validate() error {
	if r.Variant == "" {
		return fmt.Errorf("calibration record has no variant")
	}
	if r.MaxSteerAngleDeg <= 0 {
		return fmt.Errorf("variant %s: max_steer_angle_deg must be positive, got %v", r.Variant, r.MaxSteerAngleDeg)
	}
	if r.MinSteerSpeedMPS < 0 {
		return fmt.Errorf("variant %s: min_steer_speed_mps must be non-negative, got %v", r.Variant, r.MinSteerSpeedMPS)
	}
	for _, b := range []struct {
		name string
		idx  int
	}{{"steer_bus", r.SteerBus}, {"angle_bus", r.AngleBus}, {"cruise_bus", r.CruiseBus}} {
		if b.idx != BusAbsent && (b.idx < 0 || b.idx > 2) {
			return fmt.Errorf("variant %s: %s index %d out of range", r.Variant, b.name, b.idx)
		}
	}
	return nil
}

type overrideFile struct {
	Variants []Record `yaml:"variants"`
}

// LoadFile resolves a variant from a YAML table. A file entry replaces the
// built-in record wholesale; variants missing from the file fall back to
// the built-in table.
func LoadFile(path string, v Variant) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse calibration file: %w", err)
	}
	for i := range f.Variants {
		if f.Variants[i].Variant == v {
			rec := f.Variants[i]
			if err := rec.Validate(); err != nil {
				return nil, err
			}
			return &rec, nil
		}
	}
	return Resolve(v)
}
