package main

import (
	"context"
	"fmt"
	"time"

	"adas-actuation-core/calibration"
	"adas-actuation-core/controller"
	"adas-actuation-core/utils"
)

type RunnerConfig struct {
	Interfaces   []string // one SocketCAN interface per logical bus, index order
	MapPath      string
	ScenarioPath string
	CalPath      string
	Variant      string
	LongControl  bool
	OverrideMode bool
}

// Runner owns the real-time side: the fixed-period tick, frame RX, and
// frame TX. The controller itself stays synchronous and single-threaded.
type Runner struct {
	cfg    RunnerConfig
	log    *utils.Logger
	cmap   *utils.CANMap
	scen   Scenario
	ctrl   *controller.Controller
	bridge *snapshotBridge
	writer utils.BusWriter
	reader utils.BusReader
}

func NewRunner(ctx context.Context, cfg RunnerConfig, log *utils.Logger) (*Runner, error) {
	cmap, err := utils.LoadCANMap(cfg.MapPath)
	if err != nil {
		return nil, fmt.Errorf("load signal map: %w", err)
	}

	scen, err := LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var cal *calibration.Record
	if cfg.CalPath != "" {
		cal, err = calibration.LoadFile(cfg.CalPath, calibration.Variant(cfg.Variant))
	} else {
		cal, err = calibration.Resolve(calibration.Variant(cfg.Variant))
	}
	if err != nil {
		return nil, fmt.Errorf("calibration: %w", err)
	}
	cal.LongControl = cfg.LongControl
	cal.OverrideMode = cfg.OverrideMode

	var smoother controller.Smoother
	if scen.Smoother != nil {
		smoother = controller.NewGainSmoother(*scen.Smoother)
	}

	ctrl, err := controller.New(cal, log, smoother)
	if err != nil {
		return nil, err
	}

	if len(cfg.Interfaces) == 0 {
		return nil, fmt.Errorf("no CAN interfaces configured")
	}
	writer, err := utils.NewSocketCANBusWriter(ctx, cfg.Interfaces...)
	if err != nil {
		return nil, err
	}
	reader, err := utils.NewSocketCANBusReader(ctx, cfg.Interfaces[0])
	if err != nil {
		writer.Close()
		return nil, err
	}

	return &Runner{
		cfg:    cfg,
		log:    log,
		cmap:   cmap,
		scen:   scen,
		ctrl:   ctrl,
		bridge: newSnapshotBridge(cmap, log),
		writer: writer,
		reader: reader,
	}, nil
}

func (r *Runner) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
	if r.writer != nil {
		_ = r.writer.Close()
	}
}

func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("Starting control loop: variant=%s ifaces=%v scenario=%s duration=%.2fs long=%v override=%v",
		r.cfg.Variant, r.cfg.Interfaces, r.scen.Meta.Name, r.scen.Timing.DurationS,
		r.cfg.LongControl, r.cfg.OverrideMode)

	go r.receiveLoop(ctx)

	start := time.Now()
	ticker := time.NewTicker(time.Duration(controller.DTCtrl * float64(time.Second)))
	defer ticker.Stop()

	endAfter := time.Duration(r.scen.Timing.DurationS * float64(time.Second))
	var cycles uint64

	for {
		select {
		case <-ctx.Done():
			r.log.Warn("Context canceled; stopping loop")
			r.log.Info("Completed. cycles=%d", cycles)
			return ctx.Err()

		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if elapsed > endAfter {
				r.log.Info("Completed. cycles=%d", cycles)
				return nil
			}

			in := EvalCycleInput(&r.scen, elapsed.Seconds())
			snap := r.bridge.Snapshot()

			rep := r.ctrl.UpdateEvents(&snap, nil)
			if in.Enabled && rep.Events.Has(controller.EventButtonCancel) {
				in.CancelCruise = true
			}

			msgs, diag := r.ctrl.Update(in, &snap)
			for _, m := range msgs {
				frame, err := r.cmap.EncodeFrame(m.Frame, m.Values)
				if err != nil {
					r.log.Error("Encode %s failed: %v", m.Frame, err)
					return err
				}
				if err := r.writer.WriteFrame(ctx, m.Bus, frame); err != nil {
					r.log.Critical("Transmit %s on bus %d failed: %v", m.Frame, m.Bus, err)
					return err
				}
			}

			cycles++
			r.log.Trace("cycle=%d sent=%d steer=%d accel=%.3f lat=%v fused=%v events=%v",
				cycles, len(msgs), diag.AppliedSteer, diag.AppliedAccel,
				diag.LateralActive, diag.FusionEngaged, rep.Events.Names())
		}
	}
}

// receiveLoop folds incoming frames into the snapshot bridge.
func (r *Runner) receiveLoop(ctx context.Context) {
	r.log.Debug("RX loop started")
	defer r.log.Debug("RX loop stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			frame, err := r.reader.ReadFrame(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				r.log.Error("RX error: %v", err)
				continue
			}
			r.bridge.Absorb(frame)
		}
	}
}
