package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
)

func newREPLCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run the interactive draft loop",
		Long: `Reads commands from stdin:

  add <athlete> <cost>   commit an athlete at a price
  rm <athlete>           return an athlete to the catalog (no refund)
  team                   show the committed team
  best_team              propose the best team for the remaining budget
  budget                 show the remaining budget
  quit                   leave

Names are case-insensitive patterns. When several athletes match, a
numbered list is shown and the choice is read from the next line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(cmd, flags)
			if err != nil {
				return err
			}
			defer svc.Stop()
			return NewREPL(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func newBestTeamCommand(flags *rootFlags) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "best-team",
		Short: "Print the best team for the configured roster and budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(cmd, flags)
			if err != nil {
				return err
			}
			defer svc.Stop()

			p := newPrinter(cmd.OutOrStdout())
			if !commit {
				sol, err := svc.BestTeam(cmd.Context())
				if err != nil {
					return err
				}
				p.solution(sol)
				return nil
			}

			sol, outs, err := svc.CommitBestTeam(cmd.Context())
			if err != nil {
				return err
			}
			p.solution(sol)
			for _, o := range outs {
				if !o.OK() {
					p.fail("Could not add %s: %s", o.Athlete.Name, o.Reason)
				}
			}
			v, err := svc.Roster(cmd.Context())
			if err != nil {
				return err
			}
			p.roster(v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the proposed additions")
	return cmd
}

func newLookupCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <pattern>",
		Short: "Resolve a name pattern against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd, flags)
			if err != nil {
				return err
			}
			defer svc.Stop()

			res, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			switch res.Kind {
			case lookup.KindUnique:
				p.athletes([]model.Athlete{res.Athlete})
			case lookup.KindAmbiguous:
				p.say("%d athletes match %q", len(res.Matches), args[0])
				p.athletes(res.Matches)
			default:
				p.fail("Athlete %s not found", args[0])
			}
			return nil
		},
	}
}
