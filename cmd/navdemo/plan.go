package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"navfacade/internal/engine/recorder"
	"navfacade/internal/script"
)

func newPlanCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <script.yaml>",
		Short: "Print the canonical engine calls a script makes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			cfg.Script.StepDelay = 0

			rec := recorder.New()
			sess, err := newSession(cmd.Context(), cfg, rec, "stderr")
			if err != nil {
				return err
			}
			defer sess.Close(context.Background())

			runErr := sess.runner.Run(cmd.Context(), s)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(rec.Calls()); err != nil {
				return err
			}
			return runErr
		},
	}
}
