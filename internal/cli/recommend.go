package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/apperr"
	"github.com/meltforce/fitrec/internal/catalog"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List workouts of a type, optionally filtered by difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			workoutType, _ := cmd.Flags().GetString("type")
			level, _ := cmd.Flags().GetString("level")
			asJSON, _ := cmd.Flags().GetBool("json")

			ds, _, closeDS, err := dataSource(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeDS()

			records, err := ds.Recommend(cmd.Context(), workoutType, level)
			if err != nil {
				return cliError(err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), records)
			}
			printRecords(cmd, records)
			return nil
		},
	}
	cmd.Flags().String("type", "all", "Workout type (e.g. strength, endurance, all)")
	cmd.Flags().String("level", "", "Difficulty level: beginner, intermediate, advanced or all")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func newAdviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Recommend workouts from age, height and weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			var m advisor.Metrics
			m.Age, _ = cmd.Flags().GetFloat64("age")
			m.Height, _ = cmd.Flags().GetFloat64("height")
			m.Weight, _ = cmd.Flags().GetFloat64("weight")

			ds, _, closeDS, err := dataSource(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeDS()

			res, err := ds.Advise(cmd.Context(), m)
			if err != nil {
				return cliError(err)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Float64("age", 0, "Age in years")
	cmd.Flags().Float64("height", 0, "Height in cm")
	cmd.Flags().Float64("weight", 0, "Weight in kg")
	return cmd
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List workout types and their subcategories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, closeDS, err := dataSource(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeDS()

			types, err := ds.ListTypes(cmd.Context())
			if err != nil {
				return cliError(err)
			}
			w := cmd.OutOrStdout()
			for _, t := range types {
				fmt.Fprintf(w, "%-12s %3d  %s\n", t.Type, t.Count, strings.Join(t.Subcategories, ", "))
			}
			return nil
		},
	}
}

func printRecords(cmd *cobra.Command, records []catalog.WorkoutRecord) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-24s  %-10s  %-9s  %s\n", "Name", "Type", "Level", "Target")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, r := range records {
		fmt.Fprintf(w, "%-24s  %-10s  %-9s  %s\n", r.Name, r.Jenis, r.Kesulitan, r.Target)
	}
	fmt.Fprintf(w, "\n%d workouts\n", len(records))
}

// cliError reduces an *apperr.Error to its client message. Other errors are
// returned unchanged.
func cliError(err error) error {
	if msg := apperr.Message(err, ""); msg != "" {
		if apperr.Status(err) >= 500 {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return errors.New(msg)
	}
	return err
}
