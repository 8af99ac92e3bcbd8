package main

import (
	"encoding/json"
	"fmt"
	"os"

	"adas-actuation-core/controller"
)

// Scenario drives the controller on a bench: it stands in for the planner,
// producing a CycleInput per tick from time-indexed segments.
type Scenario struct {
	Meta     ScenarioMeta               `json:"meta"`
	Timing   ScenarioTiming             `json:"timing"`
	Defaults ScenarioSegment            `json:"defaults"`
	Segments []ScenarioSegment          `json:"segments"`
	Smoother *controller.SmootherConfig `json:"smoother,omitempty"`
}

type ScenarioMeta struct {
	Name        string `json:"name"`
	Version     int    `json:"version"`
	Description string `json:"description"`
}

type ScenarioTiming struct {
	DurationS float64 `json:"duration_s"`
}

// ScenarioSegment holds the planner request over [T0, T1).
type ScenarioSegment struct {
	T0 float64 `json:"t0"`
	T1 float64 `json:"t1"`

	Enabled     bool    `json:"enabled"`
	Steer       float64 `json:"steer,omitempty"`
	Gas         float64 `json:"gas,omitempty"`
	Brake       float64 `json:"brake,omitempty"`
	Cancel      bool    `json:"cancel,omitempty"`
	SetSpeedMPS float64 `json:"set_speed_mps,omitempty"`
	LeadVisible bool    `json:"lead_visible,omitempty"`
	Comment     string  `json:"comment,omitempty"`
}

// LoadScenario loads and validates a scenario from JSON.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read file: %w", err)
	}

	var scen Scenario
	if err := json.Unmarshal(data, &scen); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal: %w", err)
	}

	if scen.Timing.DurationS <= 0 {
		return Scenario{}, fmt.Errorf("invalid duration_s: %f", scen.Timing.DurationS)
	}
	return scen, nil
}

// EvalCycleInput evaluates the scenario at time t.
func EvalCycleInput(scen *Scenario, t float64) controller.CycleInput {
	seg := scen.Defaults
	for _, s := range scen.Segments {
		t1 := s.T1
		if t1 < 0 {
			t1 = scen.Timing.DurationS
		}
		if t >= s.T0 && t < t1 {
			seg = s
			break
		}
	}

	return controller.CycleInput{
		Enabled: seg.Enabled,
		Actuators: controller.ActuatorRequest{
			Steer: seg.Steer,
			Gas:   seg.Gas,
			Brake: seg.Brake,
		},
		CancelCruise: seg.Cancel,
		SetSpeedMPS:  seg.SetSpeedMPS,
		LeadVisible:  seg.LeadVisible,
	}
}
