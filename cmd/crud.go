package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/inovacc/shelfr/internal/controller"
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newEntityCommands builds the scripting surface for one collection:
//
//	shelfr <entity> list [--query] [--page]
//	shelfr <entity> get <id>
//	shelfr <entity> add --<field>...
//	shelfr <entity> update <id> --<field>...
//	shelfr <entity> rm <id>... [--yes]
//
// The commands drive the same controllers as the interactive screens, so
// validation and error handling behave identically. The resource is read
// through a getter because it is wired in the root PersistentPreRunE.
func newEntityCommands[E model.Entity](name string, res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	parent := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", schema.Plural),
	}

	parent.AddCommand(
		newListCmd(res, schema),
		newGetCmd(res, schema),
		newAddCmd(res, schema),
		newUpdateCmd(res, schema),
		newRmCmd(res, schema),
	)

	return parent
}

func newListCmd[E model.Entity](res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	var (
		query string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", schema.Plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := controller.NewListController[E](res(), schema, notifier, cfg.PageSize)
			ctrl.SetQuery(query)

			drainList(cmd.Context(), ctrl, ctrl.SetPage(page))

			if len(ctrl.Rows()) == 0 {
				printEmptyResult(schema.Plural, fmt.Sprintf("shelfr %s add", cmd.Parent().Name()))
				return nil
			}

			printRows(schema, ctrl.Rows())
			fmt.Printf("\nPage %d of %d (%d total)\n", ctrl.Page()+1, ctrl.TotalPages(), ctrl.TotalCount())

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search term")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "Zero-based page index")

	return cmd
}

func newGetCmd[E model.Entity](res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", schema.Singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := res().Get(cmd.Context(), args[0])
			if err != nil {
				if store.IsNotFound(err) {
					return fmt.Errorf("no %s with id %q", schema.Singular, args[0])
				}

				return err
			}

			printRecord(schema, record)

			return nil
		},
	}
}

func newAddCmd[E model.Entity](res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	values := make(map[string]*string, len(schema.Fields))

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Create a %s", schema.Singular),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := controller.NewCreateForm[E](res(), schema, notifier)

			for _, field := range schema.Fields {
				if cmd.Flags().Changed(flagName(field.Name)) {
					ctrl.SetField(field.Name, *values[field.Name])
				}
			}

			if err := runForm(cmd.Context(), ctrl); err != nil {
				return err
			}

			fmt.Printf("Created %s %s\n", schema.Singular, ctrl.Record().EntityID())

			return nil
		},
	}

	addFieldFlags(cmd.Flags(), schema, values)

	return cmd
}

func newUpdateCmd[E model.Entity](res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	values := make(map[string]*string, len(schema.Fields))

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s", schema.Singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := controller.NewEditForm[E](res(), schema, notifier, args[0])

			if eff := ctrl.Load(); eff != nil {
				ctrl.Apply(eff(cmd.Context()))
			}

			if ctrl.NotFound() {
				return fmt.Errorf("no %s with id %q", schema.Singular, args[0])
			}

			changed := false

			for _, field := range schema.Fields {
				if cmd.Flags().Changed(flagName(field.Name)) {
					ctrl.SetField(field.Name, *values[field.Name])

					changed = true
				}
			}

			if !changed {
				return fmt.Errorf("no fields to update")
			}

			if err := runForm(cmd.Context(), ctrl); err != nil {
				return err
			}

			fmt.Printf("Updated %s %s\n", schema.Singular, args[0])

			return nil
		},
	}

	addFieldFlags(cmd.Flags(), schema, values)

	return cmd
}

func newRmCmd[E model.Entity](res func() *store.Resource[E], schema model.Schema[E]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: fmt.Sprintf("Delete %s by id", schema.Plural),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !promptConfirm(fmt.Sprintf("Delete %d %s(s)? [y/N]: ", len(args), schema.Singular)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := res().BulkDelete(cmd.Context(), args); err != nil {
				return fmt.Errorf("failed to delete %s: %w", schema.Plural, err)
			}

			fmt.Printf("%d %s(s) deleted\n", len(args), schema.Singular)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// addFieldFlags registers one string flag per schema field, storing the
// values for RunE.
func addFieldFlags[E model.Entity](flags *pflag.FlagSet, schema model.Schema[E], values map[string]*string) {
	for _, field := range schema.Fields {
		usage := field.Label
		if field.Kind == model.FieldDate {
			usage += " (YYYY-MM-DD)"
		}

		values[field.Name] = flags.String(flagName(field.Name), "", usage)
	}
}

// flagName converts a camelCase field name to kebab-case (authorId →
// author-id).
func flagName(field string) string {
	var sb strings.Builder

	for _, r := range field {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// drainList runs a list effect and any follow-ups (such as the clamp to
// the last page) to completion.
func drainList[E model.Entity](ctx context.Context, ctrl *controller.ListController[E], eff controller.Effect) {
	for eff != nil {
		msg := eff(ctx)
		eff, _ = ctrl.Apply(msg)
	}
}

// runForm submits the form and turns its field errors into a command
// error.
func runForm[E model.Entity](ctx context.Context, ctrl *controller.FormController[E]) error {
	eff := ctrl.Submit()
	if eff != nil {
		ctrl.Apply(eff(ctx))
	}

	if ctrl.Done() {
		return nil
	}

	errs := ctrl.FieldErrors()
	if len(errs) == 0 {
		return fmt.Errorf("the store rejected the request")
	}

	fields := make([]string, 0, len(errs))
	for name := range errs {
		fields = append(fields, name)
	}

	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, name := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", name, errs[name]))
	}

	return fmt.Errorf("invalid input:\n  %s", strings.Join(lines, "\n  "))
}
