package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/muster/internal/cli/formatter"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the session calendar",
	}

	cmd.AddCommand(
		newSessionAddCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	var date dateFlag
	var maps []string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Schedule a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Session{
				Title: strings.TrimSpace(args[0]),
				Maps:  maps,
			}
			if t := date.Time(); t != nil {
				s.Date = *t
			}
			if err := app.Sessions.Create(cmd.Context(), s); err != nil {
				return err
			}
			printf(cmd, "Added session %s on %s (%s)\n", s.Title, s.Date.Format(dateLayout), formatter.TruncID(s.ID))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Session date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&maps, "maps", nil, "Maps played, comma separated")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(cmd.Context())
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatSessionList(sessions))
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a session (attendance referring to it is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(ctx, id); err != nil {
				return err
			}
			printf(cmd, "Removed session %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

// resolveSessionID accepts a full session ID or a unique prefix of one, such
// as the short form printed by `session list`.
func resolveSessionID(ctx context.Context, app *App, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("session ID is required")
	}
	sessions, err := app.Sessions.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range sessions {
		if s.ID == ref {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session %q is ambiguous (%d matches)", ref, len(matches))
	}
}
