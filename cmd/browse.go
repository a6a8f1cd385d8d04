package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/shelfr/internal/cli"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive console",
	Long: `Browse opens the full-screen console: pick a collection from the menu,
then page, search, inline-edit, and bulk-delete records, or open the
create/edit forms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.NewApp(cli.Deps{
			Ctx:      cmd.Context(),
			Cfg:      cfg,
			Notifier: notifier,
			Authors:  authors,
			Books:    books,
			Members:  members,
			Borrows:  borrows,
		})

		p := tea.NewProgram(app, tea.WithAltScreen())

		// Forward notifications into the running program as toasts.
		notifier.Register(notify.NewFuncSender("tui", func(event *notify.Event) {
			p.Send(cli.ToastMsg{Event: event})
		}))
		defer notifier.Unregister("tui")

		_, err := p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
