package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/jobfile"
	"github.com/katalvlaran/purgeplan/schedule"
)

// solveFlags are shared by plan and render.
type solveFlags struct {
	timeout     time.Duration
	seed        int64
	method      string
	masterGroup int
	bestFit     bool
	noCache     bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "k-medoid time budget (default from config)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "restart seed (default from config)")
	cmd.Flags().StringVar(&f.method, "method", "", "force grouping method: exhaustive or kmedoids")
	cmd.Flags().IntVar(&f.masterGroup, "master-group", 0, "group that receives more filaments (-1 disables)")
	cmd.Flags().BoolVar(&f.bestFit, "best-fit", false, "prefer filling both groups to capacity")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the plan cache")
}

// options overlays explicitly set flags on the configured options.
func (f *solveFlags) options(cmd *cobra.Command) (schedule.Options, error) {
	opts := configFromContext(cmd.Context()).Options()
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		opts.Timeout = f.timeout
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("master-group") {
		opts.MasterGroup = f.masterGroup
	}
	if f.bestFit {
		opts.Strategy = grouping.BestFit
	}
	switch m := grouping.Method(f.method); m {
	case "":
	case grouping.MethodExhaustive, grouping.MethodKMedoids:
		opts.Method = m
	default:
		return opts, fmt.Errorf("unknown method %q", f.method)
	}
	return opts, nil
}

// solve loads path and plans it through a Runner.
func (f *solveFlags) solve(cmd *cobra.Command, path string) (schedule.Job, *schedule.Plan, bool, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	job, err := jobfile.Load(path)
	if err != nil {
		return job, nil, false, err
	}
	opts, err := f.options(cmd)
	if err != nil {
		return job, nil, false, err
	}
	runner, err := newRunner(ctx, f.noCache, nil)
	if err != nil {
		return job, nil, false, err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	plan, hit, err := runner.Plan(ctx, job, opts)
	if err != nil {
		return job, nil, false, err
	}
	prog.done("Solved " + filepath.Base(path))
	return job, plan, hit, nil
}

func newPlanCmd() *cobra.Command {
	var (
		flags  solveFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "plan <job.yaml|job.json>",
		Short: "Group the filaments of a job and order every layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, plan, hit, err := flags.solve(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			printPlan(out, plan, hit)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}
