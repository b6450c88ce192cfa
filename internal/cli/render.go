package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/purgeplan/viz"
)

func newRenderCmd() *cobra.Command {
	var (
		flags  solveFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "render <job.yaml|job.json>",
		Short: "Draw the filament transitions of a plan as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, plan, _, err := flags.solve(cmd, args[0])
			if err != nil {
				return err
			}

			opts := viz.Options{Title: filepath.Base(args[0]), Colors: map[int]string{}}
			if job.Loaded != nil {
				for id, f := range job.Loaded.Filaments {
					if f.Color != "" {
						opts.Colors[id] = f.Color
					}
				}
			}
			dot := viz.ToDOT(plan, opts)

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".svg"
			}
			var data []byte
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".dot", ".gv":
				data = []byte(dot)
			case ".svg":
				if data, err = viz.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported output format %q", ext)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg, .dot)")
	return cmd
}
