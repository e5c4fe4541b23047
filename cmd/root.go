package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, app := newRootCmd()
	return executeRoot(ctx, rootCmd, app)
}

// executeRoot releases stores opened by a command whether it succeeded or not.
func executeRoot(ctx context.Context, rootCmd *cobra.Command, app *app) (err error) {
	if app != nil {
		defer func() {
			err = errors.Join(err, app.close())
		}()
	}

	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd returns a nil app when wiring failed; the root command then
// reports the wiring error.
func newRootCmd() (*cobra.Command, *app) {
	rootCmd := &cobra.Command{
		Use:           "lvj",
		Short:         "LeVent James (lvj): a wellness coach that keeps your check-in streak",
		Long:          "lvj is a terminal wellness coach. Chat with LeVent James, complete a daily check-in by reaching the interaction goal, build streaks, and pick techniques from the playbook.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newCheckInCmd(app),
		newSuggestCmd(app),
		newPlaybookCmd(app),
		newChatCmd(app),
		newAuthCmd(app),
	)

	return rootCmd, app
}
