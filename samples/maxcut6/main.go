package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/ising/api"
	"github.com/sarchlab/ising/config"
	"github.com/sarchlab/ising/emu"
	"github.com/sarchlab/ising/fpga"
	"github.com/sarchlab/ising/util"
	"github.com/tebeka/atexit"
)

var (
	serveMonitor = flag.Bool("monitor", false,
		"serve the akita monitor and wait for an interrupt after the run")
	trace = flag.Bool("trace", false, "log every register access")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *trace {
		level = util.LevelTrace
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: util.ReplaceLevelName,
	}))

	monitor := monitoring.NewMonitor()

	engine := sim.NewSerialEngine()
	monitor.RegisterEngine(engine)

	platform := emu.MakeBuilder().
		WithEngine(engine).
		WithFreq(250 * sim.MHz).
		Build("Emu")
	monitor.RegisterComponent(platform.Machine())

	if *serveMonitor {
		monitor.StartServer()
	}

	sb := fpga.MakeSessionBuilder().
		WithPlatform(platform).
		WithLogger(logger)

	db := api.MakeDriverBuilder().
		WithProblem(config.DefaultProblem()).
		WithSettleTime(10 * time.Millisecond).
		WithLogger(logger)

	report, err := api.Execute(sb, db, "Driver")
	if report != nil {
		report.WriteTable(os.Stdout)
	}

	fmt.Printf("Machine ran %d ticks, locked %v, %.0f ns simulated\n",
		platform.Machine().Ticks(),
		platform.Machine().Locked(),
		float64(engine.CurrentTime()*1e9))

	if *serveMonitor {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		<-ctx.Done()
		stop()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
