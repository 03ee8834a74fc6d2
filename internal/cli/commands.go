// internal/cli/commands.go
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fabin-core/fasta"
	"fabin/internal/cliutil"
	"fabin/internal/output"
	"fabin/internal/session"
	"fabin/internal/shell"
	"fabin/internal/version"
)

func runShell(ctx context.Context, rt *Runtime) error {
	sh := shell.New(rt.newSession(), rt.printer(), shell.Options{
		Prompt:  rt.Config.Shell.Prompt,
		Banner:  rt.Config.Shell.Banner,
		Logger:  rt.Log.Logger,
		Metrics: rt.Metrics,
	})
	return sh.Run(ctx, rt.In)
}

func newShellCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell (default)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), rt)
		},
	}
}

func newEncodeCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "encode <out.fabin> <fasta>...",
		Short:   "Encode FASTA files into a .fabin container",
		Example: "  fabin encode genomes.fabin data/*.fa.gz",
		Args:    rangeArgs(2, -1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { rt.Metrics.ObserveCommand("encode", err) }()
			inputs, err := cliutil.ExpandPositionals(args[1:])
			if err != nil {
				return usageErr("%v", err)
			}
			sess := rt.newSession()
			if _, err := sess.LoadAll(cmd.Context(), inputs); err != nil {
				return err
			}
			if _, err := sess.Encode(args[0]); err != nil {
				return err
			}
			return outputErr(rt.printer().Encoded(args[0]))
		},
	}
}

func newDecodeCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <in.fabin> [out.fasta]",
		Short: "Decode a .fabin container to FASTA (stdout without an output file)",
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { rt.Metrics.ObserveCommand("decode", err) }()
			sess := rt.newSession()
			if _, err := sess.Decode(args[0]); err != nil {
				return err
			}
			if len(args) == 1 {
				return outputErr(fasta.Write(rt.Out, sess.Sequences()))
			}
			if err := sess.Save(args[1]); err != nil {
				return err
			}
			return outputErr(rt.printer().Saved(args[1]))
		},
	}
}

func newListCmd(rt *Runtime) *cobra.Command {
	var format string
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "list <fasta|fabin>",
		Short: "List the sequences of a file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { rt.Metrics.ObserveCommand("list", err) }()
			if format != "text" && format != "json" && format != "tsv" {
				return usageErr("--output must be text|json|tsv, got %q", format)
			}
			sess := rt.newSession()
			if err := openInput(cmd.Context(), sess, args[0]); err != nil {
				return err
			}
			switch format {
			case "json":
				return outputErr(output.WriteSequencesJSON(rt.Out, sess.Sequences()))
			case "tsv":
				return outputErr(output.WriteSequencesTSV(rt.Out, sess.Sequences(), !noHeader))
			}
			return outputErr(rt.printer().Sequences(sess.Sequences()))
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text|json|tsv")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the TSV header row")
	return cmd
}

type routeFlags struct {
	json bool
	grid bool
}

func (f *routeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "write the route as JSON")
	cmd.Flags().BoolVar(&f.grid, "grid", false, "draw the route on the sequence grid")
}

// writeRoute prints r as text or JSON. A missing route is written too and its
// error returned for the exit code.
func writeRoute(rt *Runtime, sess *session.Session, f routeFlags, r session.Route, qerr error, remote bool) error {
	if f.json {
		if err := output.WriteRouteJSON(rt.Out, r); err != nil {
			return outputErr(err)
		}
		return qerr
	}
	if qerr != nil {
		return qerr
	}
	p := rt.printer()
	p.Grid = p.Grid || f.grid
	sq, err := sess.Find(r.Description)
	if err != nil {
		return err
	}
	if remote {
		return outputErr(p.Remote(r, sq))
	}
	return outputErr(p.Route(r, sq))
}

func newPathCmd(rt *Runtime) *cobra.Command {
	var f routeFlags
	cmd := &cobra.Command{
		Use:     "path <fasta|fabin> <description> <i> <j> <x> <y>",
		Short:   "Cheapest route between the bases at [i,j] and [x,y]",
		Example: "  fabin path genomes.fabin chr1 0 0 3 7 --json",
		Args:    exactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { rt.Metrics.ObserveCommand("path", err) }()
			pos, err := cliutil.ParsePositions(args[2:])
			if err != nil {
				return usageErr("%v", err)
			}
			sess := rt.newSession()
			if err := openInput(cmd.Context(), sess, args[0]); err != nil {
				return err
			}
			r, qerr := sess.ShortestPath(args[1], pos[0], pos[1])
			if qerr != nil && !errors.Is(qerr, session.ErrUnreachable) {
				return qerr
			}
			return writeRoute(rt, sess, f, r, qerr, false)
		},
	}
	f.register(cmd)
	return cmd
}

func newRemoteCmd(rt *Runtime) *cobra.Command {
	var f routeFlags
	cmd := &cobra.Command{
		Use:   "remote <fasta|fabin> <description> <i> <j>",
		Short: "Base of the same kind farthest, by route cost, from [i,j]",
		Args:  exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { rt.Metrics.ObserveCommand("remote", err) }()
			pos, err := cliutil.ParsePositions(args[2:])
			if err != nil {
				return usageErr("%v", err)
			}
			sess := rt.newSession()
			if err := openInput(cmd.Context(), sess, args[0]); err != nil {
				return err
			}
			r, qerr := sess.MostRemote(args[1], pos[0])
			if qerr != nil && !errors.Is(qerr, session.ErrNoRemoteBase) {
				return qerr
			}
			return writeRoute(rt, sess, f, r, qerr, true)
		},
	}
	f.register(cmd)
	return cmd
}

func newVersionCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(rt.Out, "fabin version %s\n", version.Version)
			return outputErr(err)
		},
	}
}
