package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/agraph/internal/adapters/telemetry/progrock"
	"go.trai.ch/agraph/internal/app"
)

func (c *CLI) newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Serialize the workspace's action graph to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			outputPath, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			jobs, err := cmd.Flags().GetInt("jobs")
			if err != nil {
				return err
			}
			progress, err := cmd.Flags().GetBool("progress")
			if err != nil {
				return err
			}

			if progress {
				c.app.SetProgress(progrock.New())
			}

			return c.app.Dump(cmd.Context(), app.DumpOptions{
				ConfigPath: configPath,
				OutputPath: outputPath,
				Jobs:       jobs,
			})
		},
	}

	cmd.Flags().StringP("output", "o", "actiongraph.json", "Path of the serialized action graph")
	cmd.Flags().IntP("jobs", "j", 1, "Targets encoded concurrently; 1 gives reproducible output, 0 uses all CPUs")
	cmd.Flags().Bool("progress", false, "Record per-target progress vertexes")

	return cmd
}
