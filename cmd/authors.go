package cmd

import (
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
)

func init() {
	rootCmd.AddCommand(newEntityCommands(
		"authors",
		func() *store.Resource[model.Author] { return authors },
		model.AuthorSchema(),
	))
}
