package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kingrea/decision-copilot/internal/config"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

func newStepsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps [step]",
		Short: "List the wizard steps and when each becomes reachable",
		Long:  "Lists every wizard step, or only the one named by id (upload) or label (Decision).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only []wizard.Step
			if len(args) == 1 {
				step, ok := wizard.ParseStep(args[0])
				if !ok {
					return fmt.Errorf("unknown step %q", args[0])
				}
				only = append(only, step)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return printSteps(cmd.OutOrStdout(), cfg, only...)
		},
	}
}

// printSteps renders the step table for a fresh session, limited to only
// when given.
func printSteps(w io.Writer, cfg *config.Config, only ...wizard.Step) error {
	steps := wizard.Steps
	if len(only) > 0 {
		steps = only
	}
	ctrl := wizard.New(wizard.WithDelay(cfg.AutoAdvanceDelay()))
	defer ctrl.Close()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tLABEL\tREACHABLE")
	for _, step := range steps {
		reach := "after intake"
		if ctrl.IsStepReachable(step) {
			reach = "always"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", int(step)+1, step, step.Label(), reach)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nIntake opens %s after %s.\n", wizard.StepAnalysis.Label(), cfg.AutoAdvanceDelay())
	return err
}
