package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procargs/internal/logging"
	"github.com/pranshuparmar/procargs/internal/match"
	"github.com/pranshuparmar/procargs/internal/output"
)

func newMatchCmd(root *options) *cobra.Command {
	var (
		path    string
		args    string
		jsonOut bool
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "match PID --path PATH [--args ARGS]",
		Short: "Check whether a process was started from a program with given arguments",
		Long: `match exits 0 when PID runs PATH with ARGS and 1 otherwise.

Paths compare case-insensitively on Windows. Arguments always compare
case-insensitively; when --args is blank any arguments match.`,
		Args:          cobra.MatchAll(cobra.ExactArgs(1), pidArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, a []string) error {
			pids, _ := parsePIDs(a)
			_, ex, err := prepare(cmd, root)
			if err != nil {
				return err
			}
			defer ex.Close()

			m := match.NewMatcher(ex, logging.For("match"))
			r := m.Result(pids[0], path, args)

			out := cmd.OutOrStdout()
			switch {
			case quiet:
			case jsonOut:
				s, err := output.ToJSON(r)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			default:
				output.RenderStandard(out, r, colorEnabled(root))
			}

			if !*r.Matched {
				return match.ErrNoMatch
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "program path the process must run")
	cmd.Flags().StringVar(&args, "args", "", "arguments the process must have been given")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing; report through the exit code")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}
