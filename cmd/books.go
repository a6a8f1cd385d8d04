package cmd

import (
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
)

func init() {
	rootCmd.AddCommand(newEntityCommands(
		"books",
		func() *store.Resource[model.Book] { return books },
		model.BookSchema(),
	))
}
