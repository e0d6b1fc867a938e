package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pullup/internal/importer"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/spf13/cobra"
)

func newWorkoutExportCmd(app *App) *cobra.Command {
	var (
		protocol protocolFlag
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write workouts to a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := app.Backup.Export(cmd.Context(), repository.WorkoutFilter{Protocol: protocol.value})
			if err != nil {
				return err
			}
			if outPath == "" || outPath == "-" {
				return importer.WriteWorkoutFile(cmd.OutOrStdout(), file)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := importer.WriteWorkoutFile(f, file); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d workouts to %s\n", len(file.Workouts), outPath)
			return nil
		},
	}

	registerProtocolFlag(cmd, &protocol, "Only export this protocol")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newWorkoutImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import workouts from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Backup.ImportWorkouts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d workouts", res.Imported)
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already present)", res.Skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
