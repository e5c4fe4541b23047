package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/levent-cli/internal/adapters/render/status"
	"github.com/bnema/levent-cli/internal/application"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show streak and today's check-in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker, err := app.progressTracker(cmd.Context())
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, tracker.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newCheckInCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin",
		Short: "Log one interaction without chatting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker, err := app.progressTracker(cmd.Context())
			if err != nil {
				return err
			}

			result, err := tracker.LogInteraction(cmd.Context())
			if err != nil {
				return err
			}

			if err := writeEvents(cmd, result.Events); err != nil {
				return err
			}
			return writeStatusOutput(cmd, app, tracker.Snapshot(), false)
		},
	}
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.ProgressStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeEvents(cmd *cobra.Command, events []domain.Event) error {
	rendered := statusadapter.RenderEvents(events)
	if rendered == "" {
		return nil
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
