package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	statusadapter "github.com/bnema/levent-cli/internal/adapters/render/status"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest [text...]",
		Short: "Suggest a playbook technique for how you feel",
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := app.playbookSelector(cmd.Context())
			if err != nil {
				return err
			}

			suggestion, err := selector.Suggest(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(suggestion)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.RenderSuggestion(suggestion))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newPlaybookCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Browse wellness techniques",
	}

	cmd.AddCommand(newPlaybookListCmd(app), newPlaybookShowCmd(app))

	return cmd
}

func newPlaybookListCmd(app *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List techniques by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var only []domain.Category
			if category != "" {
				parsed, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				only = []domain.Category{parsed}
			}

			selector, err := app.playbookSelector(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.RenderCatalog(selector.Catalog(), only))
			return err
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category (Breathing|Mindfulness|Journaling|Physical|Mental Reset)")

	return cmd
}

func newPlaybookShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Show a technique with its steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := app.playbookSelector(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := selector.Catalog().FindByTitle(strings.Join(args, " "))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), statusadapter.RenderEntry(entry))
			return err
		},
	}
}
