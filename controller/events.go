package controller

import "sort"

// Event is a named cruise condition code consumed by the planner.
type Event string

const (
	EventButtonEnable       Event = "buttonEnable"
	EventButtonCancel       Event = "buttonCancel"
	EventBrakeUnavailable   Event = "brakeUnavailable"
	EventBelowSteerSpeed    Event = "belowSteerSpeed"
	EventTurningIndicatorOn Event = "turningIndicatorOn"
	EventWrongMode          Event = "wrongMode"
	EventSystemDisabled     Event = "systemDisabled"
	EventPedalPressed       Event = "pedalPressed"
)

// EventSet is the per-cycle set of condition codes.
type EventSet map[Event]struct{}

func NewEventSet(events ...Event) EventSet {
	s := make(EventSet, len(events))
	for _, e := range events {
		s.Add(e)
	}
	return s
}

func (s EventSet) Add(e Event)      { s[e] = struct{}{} }
func (s EventSet) Remove(e Event)   { delete(s, e) }
func (s EventSet) Has(e Event) bool { _, ok := s[e]; return ok }

// Names returns the set in stable order.
func (s EventSet) Names() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, string(e))
	}
	sort.Strings(out)
	return out
}

// ButtonEventType is the semantic meaning of a button transition.
type ButtonEventType int

const (
	ButtonEventUnknown ButtonEventType = iota
	ButtonEventAccel
	ButtonEventDecel
	ButtonEventGapAdjust
	ButtonEventCancel
	ButtonEventAlt // main cruise button
)

// ButtonEvent is one edge-detected button transition.
type ButtonEvent struct {
	Type    ButtonEventType
	Pressed bool
}

// EventReport is what the event machine hands the planner each cycle.
type EventReport struct {
	Events       EventSet
	ButtonEvents []ButtonEvent

	// CruiseEnabled is the effective engagement state after override-mode
	// adjustment; the planner reads this, not the raw snapshot flag.
	CruiseEnabled         bool
	LowSpeedAlert         bool
	TurningIndicatorAlert bool
}

func buttonEventType(b Button) ButtonEventType {
	switch b {
	case ButtonResAccel:
		return ButtonEventAccel
	case ButtonSetDecel:
		return ButtonEventDecel
	case ButtonGapDist:
		return ButtonEventGapAdjust
	case ButtonCancel:
		return ButtonEventCancel
	default:
		return ButtonEventUnknown
	}
}

// UpdateEvents runs the button/blinker/speed event machine for one cycle.
// base carries conditions detected upstream (e.g. pedal pressed); the
// machine extends and filters it. Must be called exactly once per cycle.
func (c *Controller) UpdateEvents(snap *Snapshot, base EventSet) EventReport {
	st := &c.state
	events := base
	if events == nil {
		events = NewEventSet()
	}

	cruiseEnabled := snap.CruiseEnabled
	if c.cal.OverrideMode {
		cruiseEnabled = snap.CruiseAvailable
	}

	// Turning-indicator alert: blinker active now, or still within the
	// hold-off carried from the previous cycle, at low speed.
	blinker := snap.LeftBlinker || snap.RightBlinker || st.BlinkerTimer > 0
	st.TurningIndicatorAlert = blinker && snap.SpeedMPS < laneChangeSpeedMin-1.2

	// Low-speed steer alert hysteresis, only for variants that cut steering
	// above 10 m/s.
	if c.cal.MinSteerSpeedMPS > 10 {
		if snap.SpeedMPS < c.cal.MinSteerSpeedMPS+0.2 {
			st.LowSpeedAlert = true
		}
		if snap.SpeedMPS > c.cal.MinSteerSpeedMPS+0.7 {
			st.LowSpeedAlert = false
		}
	} else {
		st.LowSpeedAlert = false
	}

	// Edge-detect the combined button code and the main button.
	var buttons []ButtonEvent
	if snap.CruiseButtons != st.PrevCruiseButtons {
		be := ButtonEvent{Pressed: snap.CruiseButtons != ButtonNone}
		code := snap.CruiseButtons
		if !be.Pressed {
			code = st.PrevCruiseButtons
		}
		be.Type = buttonEventType(code)
		buttons = append(buttons, be)
	}
	if snap.CruiseMainButton != st.PrevCruiseMainButton {
		buttons = append(buttons, ButtonEvent{
			Type:    ButtonEventAlt,
			Pressed: snap.CruiseMainButton != 0,
		})
	}
	st.PrevCruiseButtons = snap.CruiseButtons
	st.PrevCruiseMainButton = snap.CruiseMainButton

	if c.cal.LongControl && snap.CruiseUnavailable {
		events.Add(EventBrakeUnavailable)
	}
	if st.LowSpeedAlert && c.cal.SteerBus == 0 {
		events.Add(EventBelowSteerSpeed)
	}
	if st.TurningIndicatorAlert {
		events.Add(EventTurningIndicatorOn)
	}
	if c.cal.OverrideMode {
		events.Remove(EventPedalPressed)
	}

	for _, b := range buttons {
		// Disable on cancel press-edge.
		if b.Type == ButtonEventCancel && b.Pressed {
			events.Add(EventButtonCancel)
		}
		if c.cal.LongControl && !st.CruiseLive {
			// Enable on release of either accel or decel.
			if (b.Type == ButtonEventAccel || b.Type == ButtonEventDecel) && !b.Pressed {
				events.Add(EventButtonEnable)
			}
			events.Remove(EventWrongMode)
			events.Remove(EventSystemDisabled)
		} else if !c.cal.LongControl && cruiseEnabled {
			// Native cruise passthrough: enable on decel release only.
			if b.Type == ButtonEventDecel && !b.Pressed {
				events.Add(EventButtonEnable)
			}
		}
	}

	c.smoother.InjectEvents(events)

	return EventReport{
		Events:                events,
		ButtonEvents:          buttons,
		CruiseEnabled:         cruiseEnabled,
		LowSpeedAlert:         st.LowSpeedAlert,
		TurningIndicatorAlert: st.TurningIndicatorAlert,
	}
}
