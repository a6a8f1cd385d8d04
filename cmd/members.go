package cmd

import (
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
)

func init() {
	rootCmd.AddCommand(newEntityCommands(
		"members",
		func() *store.Resource[model.Member] { return members },
		model.MemberSchema(),
	))
}
