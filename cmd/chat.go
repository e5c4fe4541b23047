package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	statusadapter "github.com/bnema/levent-cli/internal/adapters/render/status"
	"github.com/bnema/levent-cli/internal/application"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/spf13/cobra"
)

var quitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

func newChatCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to LeVent James",
		Long:  "With a message, chat sends one turn and prints the reply. Without one, it reads lines from stdin until EOF or exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := app.progressTracker(cmd.Context())
			if err != nil {
				return err
			}
			selector, err := app.playbookSelector(cmd.Context())
			if err != nil {
				return err
			}
			backend, err := app.chatBackend(cmd.Context())
			if err != nil {
				return err
			}

			coach := application.NewCoach(backend, tracker, selector, app.logger, application.CoachOptions{})

			if len(args) > 0 {
				return sendTurn(cmd, coach, strings.Join(args, " "))
			}

			return runChatSession(cmd, app, coach, tracker)
		},
	}
}

func runChatSession(cmd *cobra.Command, app *app, coach *application.Coach, tracker *application.Tracker) error {
	ctx := cmd.Context()

	watcher := application.NewRolloverWatcher(tracker, app.clock, app.logger)
	watcher.Start(ctx)
	defer watcher.Stop()

	greeting, err := coach.Welcome(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), statusadapter.RenderCoach(greeting.Text)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, quit := quitWords[strings.ToLower(line)]; quit {
			break
		}

		if err := sendTurn(cmd, coach, line); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat input: %w", err)
	}

	return writeStatusOutput(cmd, app, tracker.Snapshot(), false)
}

func sendTurn(cmd *cobra.Command, coach *application.Coach, message string) error {
	var reply application.Reply
	err := runReplySpinner(cmd.Context(), cmd.ErrOrStderr(), func(ctx context.Context) error {
		var sendErr error
		reply, sendErr = coach.Send(ctx, message)
		return sendErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return fmt.Errorf("nothing to send: %w", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, statusadapter.RenderCoach(reply.Text)); err != nil {
		return err
	}
	if err := writeEvents(cmd, reply.Interaction.Events); err != nil {
		return err
	}
	if !reply.Interaction.CheckInCompleted {
		remaining := reply.Interaction.RequiredInteractions - reply.Interaction.TodayInteractions
		if remaining > 0 {
			if _, err := fmt.Fprintf(out, "%d/%d interactions today\n", reply.Interaction.TodayInteractions, reply.Interaction.RequiredInteractions); err != nil {
				return err
			}
		}
	}
	if reply.Suggestion != nil {
		if _, err := fmt.Fprintln(out, statusadapter.RenderSuggestion(*reply.Suggestion)); err != nil {
			return err
		}
	}

	return nil
}
