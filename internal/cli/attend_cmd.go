package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/cli/formatter"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/spf13/cobra"
)

func newAttendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attend",
		Short: "Record and inspect attendance",
	}

	cmd.AddCommand(
		newAttendLogCmd(app),
		newAttendListCmd(app),
	)

	return cmd
}

func newAttendLogCmd(app *App) *cobra.Command {
	var date dateFlag
	category := categoryFlag{c: domain.CategoryTraining}
	var sessionRef string
	var countMissing bool

	cmd := &cobra.Command{
		Use:   "log KEY...",
		Short: "Record attendance for one or more members",
		Long: "Record attendance for one or more members.\n" +
			"Categories: training and event count toward the attendance percentage;\n" +
			"reserve only counts as an activity.\n" +
			"With --count-missing every other member gets one more unanswered session.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var sessionID *string
			if sessionRef != "" {
				id, err := resolveSessionID(ctx, app, sessionRef)
				if err != nil {
					return err
				}
				sessionID = &id
			}

			on := app.now()
			if t := date.Time(); t != nil {
				on = *t
			}
			on = time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, time.UTC)

			for _, key := range args {
				if _, err := app.Members.GetByKey(ctx, key); err != nil {
					return memberLookupError(key, err)
				}
			}
			for _, key := range args {
				rec := &domain.AttendanceRecord{
					MemberKey: key,
					Date:      on,
					Category:  category.c,
					SessionID: sessionID,
				}
				if err := app.Attendance.Record(ctx, rec); err != nil {
					return fmt.Errorf("recording %s: %w", key, memberLookupError(key, err))
				}
			}

			printf(cmd, "Recorded %s on %s for %d member(s)\n", category.c, on.Format(dateLayout), len(args))

			if countMissing {
				missing, err := membersNotIn(ctx, app, args)
				if err != nil {
					return err
				}
				if len(missing) > 0 {
					updated, err := app.Members.RecordNoResponse(ctx, missing)
					if err != nil {
						return err
					}
					var flagged int
					for _, m := range updated {
						if m.Unresponsive(app.noResponseThreshold()) {
							flagged++
						}
					}
					printf(cmd, "Counted no response for %d member(s), %d flagged\n", len(updated), flagged)
				}
			}
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Attendance date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().Var(&category, "category", "training, event or reserve")
	cmd.Flags().StringVar(&sessionRef, "session", "", "Session ID or prefix")
	cmd.Flags().BoolVar(&countMissing, "count-missing", false, "Count an unanswered session for everyone not listed")

	return cmd
}

// membersNotIn returns the attendance keys of every member not named in keys.
func membersNotIn(ctx context.Context, app *App, keys []string) ([]string, error) {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	members, err := app.Members.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range members {
		if !present[m.AttendanceKey()] {
			out = append(out, m.AttendanceKey())
		}
	}
	return out, nil
}

func newAttendListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list KEY",
		Short: "List a member's attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Members.GetByKey(ctx, args[0])
			if err != nil {
				return memberLookupError(args[0], err)
			}
			records, err := app.Attendance.ListByMember(ctx, m.AttendanceKey())
			if err != nil {
				return err
			}
			writeln(cmd, formatter.Header(fmt.Sprintf("Attendance of %s (%d)", m.Name, len(records))))
			writeln(cmd, formatter.FormatAttendanceList(records))
			return nil
		},
	}
}
