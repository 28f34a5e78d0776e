package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navfacade/internal/script"
	"navfacade/internal/ui"
)

func newRunCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Play a script in the terminal engine",
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

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			uiEngine := ui.NewEngine(ui.NewRegistry().SetFallback(ui.NewPropsView))
			// Logs would corrupt the alt screen, so they only go to a file.
			sess, err := newSession(ctx, cfg, uiEngine, "")
			if err != nil {
				return err
			}
			defer sess.Close(context.Background())

			p := tea.NewProgram(ui.NewModel(uiEngine).AsTeaModel(), tea.WithAltScreen())
			uiEngine.Attach(p)

			go func() {
				if err := sess.runner.Run(ctx, s); err != nil && ctx.Err() == nil {
					sess.logger.Error("script failed", zap.Error(err))
					p.Send(ui.ErrorMsg{Err: err})
				}
			}()

			_, err = p.Run()
			return err
		},
	}
}
