package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/muster/internal/config"
	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/metrics"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Members      service.MemberService
	Sessions     service.SessionService
	Attendance   service.AttendanceService
	Requirements service.RankRequirementService
	Import       service.ImportService
	Eligibility  service.EligibilityService

	Order    domain.RankOrder
	Config   *config.Config
	Recorder *metrics.Recorder
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means it is not.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh form.
	Confirm func(prompt string) (bool, error)
	// Now is the clock used for promotion stamps. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(prompt string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(prompt)
	}
	return huhConfirm(prompt)
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) noResponseThreshold() int {
	if a.Config != nil && a.Config.NoResponseThreshold > 0 {
		return a.Config.NoResponseThreshold
	}
	return domain.DefaultNoResponseThreshold
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "muster" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "muster",
		Short:         "Clan roster, attendance and promotion eligibility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMemberCmd(app),
		newSessionCmd(app),
		newAttendCmd(app),
		newRankCmd(app),
		newImportCmd(app),
		newReportCmd(app),
		newServeCmd(app),
	)

	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
