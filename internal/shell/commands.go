// internal/shell/commands.go
package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fabin/internal/cliutil"
)

// ErrUsage marks a command called with the wrong arguments.
var ErrUsage = errors.New("usage")

// errExit ends the loop.
var errExit = errors.New("exit")

type command struct {
	name    string
	alias   string
	args    string
	summary string
	min     int
	max     int // -1 means unbounded
	run     func(ctx context.Context, sh *Shell, args []string) error
}

func (c *command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// commands is filled in init since the help command ranges over it.
var commands []*command

func commandList() []*command {
	return []*command{
		{name: "load", alias: "cargar", args: "<file>", min: 1, max: 1,
			summary: "Load the sequences of a FASTA file, replacing the ones in memory.",
			run: func(ctx context.Context, sh *Shell, a []string) error {
				n, err := sh.sess.Load(ctx, a[0])
				if err != nil {
					return err
				}
				return sh.p.Loaded(a[0], n)
			}},
		{name: "list", alias: "listar_secuencias", min: 0, max: 0,
			summary: "List the sequences in memory with their number of bases.",
			run: func(_ context.Context, sh *Shell, _ []string) error {
				return sh.p.Sequences(sh.sess.Sequences())
			}},
		{name: "histogram", alias: "histograma", args: "<description>", min: 1, max: 1,
			summary: "Print how many times each symbol appears in a sequence.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				h, err := sh.sess.Histogram(a[0])
				if err != nil {
					return err
				}
				return sh.p.Histogram(h)
			}},
		{name: "is_subsequence", alias: "es_subsecuencia", args: "<subsequence>", min: 1, max: 1,
			summary: "Count the occurrences of a subsequence in the sequences in memory.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				n, err := sh.sess.CountOccurrences(a[0])
				if err != nil {
					return err
				}
				return sh.p.Occurrences(n)
			}},
		{name: "mask", alias: "enmascarar", args: "<subsequence>", min: 1, max: 1,
			summary: "Replace every occurrence of a subsequence with X.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				n, err := sh.sess.Mask(a[0])
				if err != nil {
					return err
				}
				return sh.p.Masked(n)
			}},
		{name: "save", alias: "guardar", args: "<file>", min: 1, max: 1,
			summary: "Write the sequences in memory to a FASTA file.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				if err := sh.sess.Save(a[0]); err != nil {
					return err
				}
				return sh.p.Saved(a[0])
			}},
		{name: "encode", alias: "codificar", args: "<file.fabin>", min: 1, max: 1,
			summary: "Huffman-encode the sequences in memory into a .fabin file.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				if _, err := sh.sess.Encode(a[0]); err != nil {
					return err
				}
				return sh.p.Encoded(a[0])
			}},
		{name: "decode", alias: "decodificar", args: "<file.fabin>", min: 1, max: 1,
			summary: "Load the sequences stored in a .fabin file, replacing the ones in memory.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				if _, err := sh.sess.Decode(a[0]); err != nil {
					return err
				}
				return sh.p.Decoded(a[0])
			}},
		{name: "shortest_path", alias: "ruta_mas_corta", args: "<description> <i> <j> <x> <y>", min: 5, max: 5,
			summary: "Find the cheapest route between the bases at [i,j] and [x,y].",
			run: func(_ context.Context, sh *Shell, a []string) error {
				pos, err := cliutil.ParsePositions(a[1:])
				if err != nil {
					return fmt.Errorf("%w: %v", ErrUsage, err)
				}
				r, err := sh.sess.ShortestPath(a[0], pos[0], pos[1])
				if err != nil {
					return err
				}
				sq, _ := sh.sess.Find(a[0])
				return sh.p.Route(r, sq)
			}},
		{name: "remote_base", alias: "base_remota", args: "<description> <i> <j>", min: 3, max: 3,
			summary: "Find the base of the same kind farthest from the base at [i,j].",
			run: func(_ context.Context, sh *Shell, a []string) error {
				pos, err := cliutil.ParsePositions(a[1:])
				if err != nil {
					return fmt.Errorf("%w: %v", ErrUsage, err)
				}
				r, err := sh.sess.MostRemote(a[0], pos[0])
				if err != nil {
					return err
				}
				sq, _ := sh.sess.Find(a[0])
				return sh.p.Remote(r, sq)
			}},
		{name: "help", alias: "ayuda", args: "[command]", min: 0, max: 1,
			summary: "List the commands, or describe one.",
			run: func(_ context.Context, sh *Shell, a []string) error {
				if len(a) == 0 {
					return sh.help()
				}
				c, ok := lookup(a[0])
				if !ok {
					return fmt.Errorf("%w %q", errUnknownCommand, a[0])
				}
				_, err := fmt.Fprintf(sh.out, "%s (%s)\n  %s\n", c.usage(), c.alias, c.summary)
				return err
			}},
		{name: "exit", alias: "salir", min: 0, max: 0,
			summary: "Leave the shell.",
			run:     func(context.Context, *Shell, []string) error { return errExit }},
	}
}

var errUnknownCommand = errors.New("unknown command")

var byName map[string]*command

func init() {
	commands = commandList()
	byName = make(map[string]*command, 2*len(commands))
	for _, c := range commands {
		byName[c.name] = c
		byName[c.alias] = c
	}
}

func lookup(name string) (*command, bool) {
	c, ok := byName[strings.ToLower(name)]
	return c, ok
}

func (sh *Shell) help() error {
	list := append([]*command(nil), commands...)
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })

	width := 0
	for _, c := range list {
		if n := len(c.usage()); n > width {
			width = n
		}
	}
	if _, err := fmt.Fprintln(sh.out, sh.p.Styles.Heading.Render("Commands:")); err != nil {
		return err
	}
	for _, c := range list {
		if _, err := fmt.Fprintf(sh.out, "  %-*s  %s\n", width, c.usage(), c.summary); err != nil {
			return err
		}
	}
	return nil
}
