package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"adas-actuation-core/utils"
)

func main() {
	var (
		ifaces      = flag.String("ifaces", "can0", "comma-separated SocketCAN interfaces, one per logical bus")
		mapPath     = flag.String("map", "config/can/signal_map.csv", "Path to the CAN signal map CSV")
		scenPath    = flag.String("scenario", "loop/bench_cruise.json", "Scenario JSON file standing in for the planner")
		calPath     = flag.String("calibration", "", "Optional YAML calibration override file")
		variant     = flag.String("variant", "sedan", "Vehicle variant")
		longCtrl    = flag.Bool("long", false, "Enable full longitudinal control")
		override    = flag.Bool("override", false, "Enable override mode")
		metricsAddr = flag.String("metrics", ":9190", "Prometheus metrics listen address, empty to disable")
		logLevel    = flag.String("log", "info", "trace|debug|info|warn|error|critical")
	)
	flag.Parse()

	log, err := utils.NewFileLogger("actuation.log", utils.ParseLevel(*logLevel), true)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: cannot open actuation.log: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Close()

	cfg := RunnerConfig{
		Interfaces:   strings.Split(*ifaces, ","),
		MapPath:      *mapPath,
		ScenarioPath: *scenPath,
		CalPath:      *calPath,
		Variant:      *variant,
		LongControl:  *longCtrl,
		OverrideMode: *override,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := NewRunner(ctx, cfg, log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		os.Exit(1)
	}
	defer runner.Close()

	g, ctx := errgroup.WithContext(ctx)

	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: promhttp.Handler()}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer stop()
		return runner.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Critical("Run failed: %v", err)
		os.Exit(1)
	}
}
