package cmd

import (
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
)

func init() {
	rootCmd.AddCommand(newEntityCommands(
		"borrowed",
		func() *store.Resource[model.BorrowRecord] { return borrows },
		model.BorrowSchema(),
	))
}
