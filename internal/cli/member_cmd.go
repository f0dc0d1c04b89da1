package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/cli/formatter"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/spf13/cobra"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the roster",
	}

	cmd.AddCommand(
		newMemberAddCmd(app),
		newMemberListCmd(app),
		newMemberShowCmd(app),
		newMemberEditCmd(app),
		newMemberPromoteCmd(app),
		newMemberDemoteCmd(app),
		newMemberNoResponseCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

func newMemberAddCmd(app *App) *cobra.Command {
	var key, rank, group, comment string
	var level int
	var joined dateFlag

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a member to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rank == "" {
				names := app.Order.Names()
				if len(names) == 0 {
					return fmt.Errorf("no ranks configured")
				}
				rank = names[0]
			}

			m := &domain.Member{
				Key:      strings.TrimSpace(key),
				Name:     strings.TrimSpace(args[0]),
				Level:    level,
				Rank:     rank,
				Group:    group,
				Comment:  comment,
				JoinDate: joined.Time(),
			}
			if err := app.Members.Create(cmd.Context(), m); err != nil {
				return err
			}

			printf(cmd, "Added %s as %s (key %s)\n", m.Name, m.Rank, m.AttendanceKey())
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Attendance key (defaults to the name)")
	cmd.Flags().StringVar(&rank, "rank", "", "Rank (defaults to the lowest rank)")
	cmd.Flags().IntVar(&level, "level", 0, "In-game level")
	cmd.Flags().Var(&joined, "joined", "Join date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&group, "group", "", "Squad or group")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")

	return cmd
}

func newMemberListCmd(app *App) *cobra.Command {
	var byGroup bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster, highest rank first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Members.List(cmd.Context())
			if err != nil {
				return err
			}
			if byGroup {
				writeln(cmd, formatter.FormatMemberGroups(domain.GroupMembers(members), app.noResponseThreshold()))
				return nil
			}
			writeln(cmd, formatter.FormatMemberList(members, app.noResponseThreshold()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&byGroup, "by-group", false, "Group the roster by squad")
	return cmd
}

func newMemberShowCmd(app *App) *cobra.Command {
	var now dateFlag

	cmd := &cobra.Command{
		Use:   "show KEY",
		Short: "Show a member with attendance and eligibility",
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
			verdict, err := app.memberVerdict(ctx, m.AttendanceKey(), now)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatMemberDetail(m, records, verdict))
			return nil
		},
	}

	cmd.Flags().Var(&now, "now", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func newMemberEditCmd(app *App) *cobra.Command {
	var name, rank, group, comment string
	var level int
	var joined dateFlag

	cmd := &cobra.Command{
		Use:   "edit KEY",
		Short: "Change a member's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Members.GetByKey(ctx, args[0])
			if err != nil {
				return memberLookupError(args[0], err)
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				m.Name = strings.TrimSpace(name)
			}
			if flags.Changed("rank") {
				m.Rank = rank
			}
			if flags.Changed("level") {
				m.Level = level
			}
			if flags.Changed("joined") {
				m.JoinDate = joined.Time()
			}
			if flags.Changed("group") {
				m.Group = group
			}
			if flags.Changed("comment") {
				m.Comment = comment
			}

			if err := app.Members.Update(ctx, m); err != nil {
				return err
			}
			printf(cmd, "Updated %s\n", m.AttendanceKey())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&rank, "rank", "", "Rank")
	cmd.Flags().IntVar(&level, "level", 0, "In-game level")
	cmd.Flags().Var(&joined, "joined", "Join date (YYYY-MM-DD, empty to clear)")
	cmd.Flags().StringVar(&group, "group", "", "Squad or group")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")

	return cmd
}

func newMemberPromoteCmd(app *App) *cobra.Command {
	var force bool
	var now dateFlag

	cmd := &cobra.Command{
		Use:   "promote KEY",
		Short: "Advance a member to the next rank",
		Long: "Advance a member to the next rank and stamp the promotion date.\n" +
			"Members who do not meet the requirements are refused unless --force is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]

			verdict, err := app.memberVerdict(ctx, key, now)
			if err != nil {
				return memberLookupError(key, err)
			}
			if verdict != nil && verdict.NextRank != "" && !verdict.Eligible && !force {
				msgs := make([]string, len(verdict.Reasons))
				for i, r := range verdict.Reasons {
					msgs[i] = r.Message
				}
				return fmt.Errorf("%s does not meet the requirements for %s: %s (use --force to promote anyway)",
					key, verdict.NextRank, strings.Join(msgs, "; "))
			}

			stamp := app.now()
			if t := now.Time(); t != nil {
				stamp = *t
			}
			m, err := app.Members.Promote(ctx, key, stamp)
			if err != nil {
				return err
			}
			printf(cmd, "Promoted %s to %s\n", m.Name, m.Rank)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Promote even when requirements are not met")
	cmd.Flags().Var(&now, "now", "Evaluate and stamp as of this date (YYYY-MM-DD)")
	return cmd
}

func newMemberDemoteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "demote KEY",
		Short: "Move a member down one rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]

			m, err := app.Members.GetByKey(ctx, key)
			if err != nil {
				return memberLookupError(key, err)
			}
			previous, ok := app.Order.Previous(m.Rank)
			if !ok {
				return fmt.Errorf("demoting %s from %s: %w", key, m.Rank, service.ErrNoLowerRank)
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Demote %s from %s to %s?", m.Name, m.Rank, previous))
				if err != nil {
					return err
				}
				if !ok {
					writeln(cmd, "Cancelled.")
					return nil
				}
			}

			m, err = app.Members.Demote(ctx, key)
			if err != nil {
				return err
			}
			printf(cmd, "Demoted %s to %s\n", m.Name, m.Rank)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newMemberNoResponseCmd(app *App) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "noresponse KEY...",
		Short: "Count an unanswered session for members",
		Long: "Add one unanswered session to each member's no-response count.\n" +
			"Members reaching no_response_threshold are flagged in listings and reports.\n" +
			"Recording attendance clears the count; --reset clears it by hand.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			threshold := app.noResponseThreshold()

			for _, key := range args {
				if _, err := app.Members.GetByKey(ctx, key); err != nil {
					return memberLookupError(key, err)
				}
			}

			if reset {
				for _, key := range args {
					if _, err := app.Members.ResetNoResponse(ctx, key); err != nil {
						return err
					}
				}
				printf(cmd, "Cleared the no-response count of %d member(s)\n", len(args))
				return nil
			}

			members, err := app.Members.RecordNoResponse(ctx, args)
			if err != nil {
				return err
			}
			for _, m := range members {
				line := fmt.Sprintf("%s: %d unanswered", m.AttendanceKey(), m.NoResponse)
				if m.Unresponsive(threshold) {
					line += fmt.Sprintf(" (flagged, threshold %d)", threshold)
				}
				writeln(cmd, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the count instead of adding to it")
	return cmd
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a member and their attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to remove %s without --yes", key)
				}
				ok, err := app.confirm(fmt.Sprintf("Remove %s and all of their attendance?", key))
				if err != nil {
					return err
				}
				if !ok {
					writeln(cmd, "Cancelled.")
					return nil
				}
			}

			removed, err := app.Members.Delete(cmd.Context(), key)
			if err != nil {
				return memberLookupError(key, err)
			}
			printf(cmd, "Removed %s (%d attendance records)\n", key, removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// memberVerdict evaluates a single member. It returns nil when no
// eligibility service is wired.
func (a *App) memberVerdict(ctx context.Context, key string, now dateFlag) (*app.VerdictView, error) {
	if a.Eligibility == nil {
		return nil, nil
	}
	resp, err := a.Eligibility.Report(ctx, app.EligibilityRequest{MemberKey: key, Now: now.Time()})
	if err != nil {
		return nil, err
	}
	if len(resp.Verdicts) == 0 {
		return nil, nil
	}
	return &resp.Verdicts[0], nil
}

func memberLookupError(key string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("member %q not found", key)
	}
	return err
}
