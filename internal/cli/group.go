package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/purgeplan/grouping"
	"github.com/katalvlaran/purgeplan/jobfile"
)

func newGroupCmd() *cobra.Command {
	var (
		exhaustive bool
		alts       int
	)
	cmd := &cobra.Command{
		Use:   "group <job.yaml|job.json>",
		Short: "Print how the filaments of a job split between the two groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			job, err := jobfile.Load(args[0])
			if err != nil {
				return err
			}
			matrices, err := job.FlushMatrices()
			if err != nil {
				return err
			}

			sopts := configFromContext(ctx).Options()
			opts := grouping.DefaultOptions()
			opts.MaxGroupSize = job.MaxGroupSize
			opts.Unprintable = job.Unprintable
			opts.Loaded = job.Loaded
			opts.Timeout = sopts.Timeout
			opts.Seed = sopts.Seed
			opts.GapThreshold = sopts.GapThreshold
			opts.MasterGroup = sopts.MasterGroup
			opts.Logger = loggerFromContext(ctx)
			if len(job.Sequences) > 0 {
				opts.Custom = job.Sequences
			}

			run := grouping.Group
			if exhaustive {
				run = grouping.Exhaustive
			}
			res, err := run(job.Layers, matrices, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printGroups(out, res.Members(0), res.Members(1))
			fmt.Fprintf(out, "%s %s  %s %s\n",
				StyleDim.Render("cost"), StyleNumber.Render(fmt.Sprintf("%g", res.Cost)),
				StyleDim.Render("method"), StyleValue.Render(string(res.Method)))
			for i, alt := range res.Alternatives {
				if i == alts {
					break
				}
				fmt.Fprintf(out, "  %s %v\n", StyleDim.Render(fmt.Sprintf("alt %d", i+1)), alt)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exhaustive, "exhaustive", false, "enumerate every labeling (small jobs only)")
	cmd.Flags().IntVar(&alts, "alternatives", 3, "number of near-optimal alternatives to list")
	return cmd
}
