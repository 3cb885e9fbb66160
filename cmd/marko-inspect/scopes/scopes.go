package scopes

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/marko-inspect/cmd/marko-inspect/workspace"
	"github.com/walteh/marko-inspect/pkg/debug"
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/scope"
	"gitlab.com/tozd/go/errors"
)

type styles struct {
	column lipgloss.Style
	char   lipgloss.Style
	plain  lipgloss.Style
	known  lipgloss.Style
	script lipgloss.Style
	other  lipgloss.Style
}

func newStyles() styles {
	return styles{
		column: lipgloss.NewStyle().Faint(true).Width(5).Align(lipgloss.Right),
		char:   lipgloss.NewStyle().Bold(true).Width(4),
		plain:  lipgloss.NewStyle().Faint(true),
		known:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		script: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		other:  lipgloss.NewStyle(),
	}
}

type Handler struct {
	filePath   string
	row        int
	configPath string
	debug      bool

	fs  afero.Fs
	out io.Writer
}

func NewScopesCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "scopes [file-path] [row]",
		Short: "print the scope stack of every character on a zero-based row",
	}

	cmd.Args = cobra.ExactArgs(2)

	cmd.Flags().StringVar(&me.configPath, "config", "", "config file")
	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.filePath = args[0]

		var err error
		me.row, err = strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("invalid row: %w", err)
		}

		me.out = cmd.OutOrStdout()
		ctx := debug.WithLogger(cmd.Context(), cmd.ErrOrStderr(), me.debug)

		return me.Run(ctx)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	ctx, _ = debug.WithRequest(ctx)

	tmpl, err := workspace.Open(ctx, me.fs, me.filePath, me.configPath)
	if err != nil {
		return err
	}

	if me.row < 0 || me.row >= len(tmpl.Document.Lines) {
		return errors.Errorf("row %d is outside %s (%d rows)", me.row, me.filePath, len(tmpl.Document.Lines))
	}

	st := newStyles()
	for col, r := range []rune(tmpl.Document.LineText(me.row)) {
		stack := tmpl.Document.ScopesAt(position.New(me.row, col))
		line := st.column.Render(strconv.Itoa(col)) + " " + st.char.Render(strconv.Quote(string(r))) + " " + me.renderStack(st, tmpl.Table, stack)
		if _, err := fmt.Fprintln(me.out, line); err != nil {
			return errors.Errorf("writing output: %w", err)
		}
	}

	return nil
}

func (me *Handler) renderStack(st styles, table *scope.Table, stack []string) string {
	if table.IsPlainText(stack) {
		return st.plain.Render(stack[0])
	}

	parts := make([]string, 0, len(stack))
	for _, name := range stack {
		switch {
		case table.IsScript(name):
			parts = append(parts, st.script.Render(name))
		default:
			if info, ok := table.Lookup(name); ok {
				parts = append(parts, st.known.Render(name+" ("+info.Kind.String()+")"))
			} else {
				parts = append(parts, st.other.Render(name))
			}
		}
	}
	return strings.Join(parts, " > ")
}
