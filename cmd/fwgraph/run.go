package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/comalice/fwgraph/internal/production"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/realtime"
	"github.com/comalice/fwgraph/sm"
)

var (
	runConfig    string
	runTicks     uint64
	runTickRate  time.Duration
	runReportDir string
	runTrace     bool
)

var runCmd = &cobra.Command{
	Use:   "run [model...]",
	Short: "Run models on the realtime executive",
	Long: `Run registers the selected models (all of them by default) with a
fixed-rate runtime, sends the triggers scheduled in the run file and
executes every instance once per tick.

A run file is YAML:

  tick_rate: 10ms
  ticks: 10
  log_level: debug
  triggers:
    - {tick: 2, target: switch, trigger: 1}
    - {tick: 3, target: switch, trigger: 2, priority: 5}

Flags override the file. --ticks 0 runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := DefaultRunFile()
		if runConfig != "" {
			var err error
			if cfg, err = LoadRunFile(runConfig); err != nil {
				return err
			}
		}
		flags := cmd.Flags()
		if flags.Changed("ticks") {
			cfg.Ticks = runTicks
		}
		if flags.Changed("tick-rate") {
			cfg.TickRate = runTickRate
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		l, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		selected, err := selectModels(args)
		if err != nil {
			return err
		}
		s := &session{
			cfg:       cfg,
			trace:     runTrace,
			reportDir: runReportDir,
			logger:    l,
			out:       cmd.OutOrStdout(),
		}
		return s.run(cmd.Context(), selected)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "YAML run file")
	runCmd.Flags().Uint64VarP(&runTicks, "ticks", "n", 0, "Number of ticks to run (0 runs until interrupted)")
	runCmd.Flags().DurationVar(&runTickRate, "tick-rate", 0, "Tick period")
	runCmd.Flags().StringVar(&runReportDir, "report-dir", "", "Write a YAML report per instance into this directory")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Log every action and guard at debug level")
}

// session is one invocation of the run command.
type session struct {
	cfg       RunFile
	trace     bool
	reportDir string
	logger    *log.Logger
	out       io.Writer
}

// machineRun and procedureRun remember where their instance was when the
// runtime stopped it.
type machineRun struct {
	*sm.Machine
	final string
}

func (r *machineRun) Stop() {
	r.final = production.DescribeMachine(r.Machine).Current
	r.Machine.Stop()
}

type procedureRun struct {
	*pr.Procedure
	final string
}

func (r *procedureRun) Stop() {
	r.final = production.DescribeProcedure(r.Procedure).Current
	r.Procedure.Stop()
}

func (s *session) run(ctx context.Context, selected []model) error {
	built, err := buildAll(selected, s.logger, s.trace)
	if err != nil {
		return err
	}
	if err := s.checkTargets(built); err != nil {
		return err
	}

	schedule := s.cfg.schedule()
	rt := realtime.NewRuntime(realtime.Config{
		TickRate:           s.cfg.TickRate,
		MaxTriggersPerTick: s.cfg.MaxTriggersPerTick,
		Logger:             s.logger,
		BeforeTick: func(rt *realtime.Runtime, tick uint64) {
			for _, tr := range schedule[tick] {
				if err := rt.SendWithPriority(tr.Target, sm.TriggerID(tr.Trigger), tr.Priority); err != nil {
					s.logger.Warn("trigger dropped", "tick", tick, "target", tr.Target, "trigger", tr.Trigger, "err", err)
				}
			}
		},
	})
	runs := make([]realtime.Instance, len(built))
	for i, b := range built {
		switch v := b.inst.(type) {
		case *sm.Machine:
			runs[i] = &machineRun{Machine: v}
		case *pr.Procedure:
			runs[i] = &procedureRun{Procedure: v}
		}
		if err := rt.Register(b.name, runs[i]); err != nil {
			return err
		}
	}

	s.logger.Info("run started", "instances", len(runs), "ticks", s.cfg.Ticks, "tick_rate", s.cfg.TickRate)
	start := time.Now()
	runErr := rt.Run(ctx, s.cfg.Ticks)
	s.logger.Info("run finished", "ticks", rt.TickNumber(), "elapsed", time.Since(start))

	s.summarize(rt, runs)
	if s.reportDir != "" {
		// reports are still wanted after an interrupt
		if err := s.writeReports(context.WithoutCancel(ctx), runs); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

// checkTargets rejects scheduled triggers that name an unknown instance or
// a procedure.
func (s *session) checkTargets(built []instance) error {
	byName := make(map[string]realtime.Instance, len(built))
	for _, b := range built {
		byName[b.name] = b.inst
	}
	for i, tr := range s.cfg.Triggers {
		inst, ok := byName[tr.Target]
		if !ok {
			return fmt.Errorf("trigger %d: no instance %q: %w", i, tr.Target, ErrInvalidRunFile)
		}
		if _, ok := inst.(*sm.Machine); !ok {
			return fmt.Errorf("trigger %d: %q takes no triggers: %w", i, tr.Target, ErrInvalidRunFile)
		}
	}
	return nil
}

func (s *session) summarize(rt *realtime.Runtime, runs []realtime.Instance) {
	fmt.Fprintln(s.out, heading(fmt.Sprintf("ran %d ticks", rt.TickNumber())))
	fmt.Fprintln(s.out, rule())
	name := titleStyle.Width(14)
	for i, n := range rt.Names() {
		var final string
		var execs uint64
		var err error
		switch v := runs[i].(type) {
		case *machineRun:
			final, execs, err = v.final, v.ExecCount(), v.Err()
		case *procedureRun:
			final, execs, err = v.final, v.ExecCount(), v.Err()
		}
		status := successStyle.Render("✓")
		if err != nil {
			status = errorStyle.Render("✗ " + err.Error())
		}
		fmt.Fprintf(s.out, "  %s %s %s %s\n",
			name.Render(n),
			mutedStyle.Width(12).Render(final),
			mutedStyle.Render(fmt.Sprintf("exec %-6d", execs)),
			status)
	}
}

func (s *session) writeReports(ctx context.Context, runs []realtime.Instance) error {
	w, err := production.NewReportWriter(s.reportDir)
	if err != nil {
		return err
	}
	for _, r := range runs {
		var path string
		switch v := r.(type) {
		case *machineRun:
			path, err = w.WriteMachine(ctx, v.Machine)
		case *procedureRun:
			path, err = w.WriteProcedure(ctx, v.Procedure)
		}
		if err != nil {
			return err
		}
		s.logger.Debug("report written", "path", path)
	}
	fmt.Fprintln(s.out, mutedStyle.Render("  reports written to "+s.reportDir))
	return nil
}
