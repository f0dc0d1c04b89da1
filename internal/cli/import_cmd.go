package cli

import (
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON roster bundle",
		Long: "Import members, sessions, attendance and rank requirements from a JSON\n" +
			"roster bundle. The file is validated first and written in one transaction.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportRoster(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd, "Imported %d members, %d sessions, %d attendance records, %d rank requirements\n",
				result.MemberCount, result.SessionCount, result.AttendanceCount, result.RequirementCount)
			return nil
		},
	}
}
