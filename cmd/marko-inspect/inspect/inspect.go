package inspect

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/marko-inspect/cmd/marko-inspect/workspace"
	"github.com/walteh/marko-inspect/pkg/completion"
	"github.com/walteh/marko-inspect/pkg/config"
	"github.com/walteh/marko-inspect/pkg/debug"
	"github.com/walteh/marko-inspect/pkg/position"
	"gitlab.com/tozd/go/errors"
)

const defaultTabWidth = 4

type Handler struct {
	filePath   string
	row        int
	column     int
	configPath string
	offset     int
	useOffset  bool
	visual     bool
	tabWidth   int
	debug      bool

	fs  afero.Fs
	out io.Writer

	// resolveTabWidth reads the tab width an editor would use for a file.
	resolveTabWidth func(path string) (int, error)
}

func NewInspectCommand() *cobra.Command {
	me := &Handler{
		fs:              afero.NewOsFs(),
		resolveTabWidth: editorconfigTabWidth,
	}

	cmd := &cobra.Command{
		Use:   "inspect [file-path] [row] [column]",
		Short: "report what can be completed at a zero-based position in a template",
	}

	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("offset") {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(3)(cmd, args)
	}

	cmd.Flags().StringVar(&me.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	cmd.Flags().IntVar(&me.offset, "offset", 0, "zero-based character offset into the file, instead of row and column")
	cmd.Flags().BoolVar(&me.visual, "visual", false, "treat column as a display column, expanding tabs")
	cmd.Flags().IntVar(&me.tabWidth, "tab-width", 0, "tab width for --visual (default: from .editorconfig)")
	cmd.Flags().BoolVar(&me.debug, "debug", false, "enable debug logging")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.filePath = args[0]
		me.useOffset = cmd.Flags().Changed("offset")

		if !me.useOffset {
			var err error
			me.row, err = strconv.Atoi(args[1])
			if err != nil {
				return errors.Errorf("invalid row: %w", err)
			}
			me.column, err = strconv.Atoi(args[2])
			if err != nil {
				return errors.Errorf("invalid column: %w", err)
			}
		}

		me.out = cmd.OutOrStdout()
		ctx := debug.WithLogger(cmd.Context(), cmd.ErrOrStderr(), me.debug)

		return me.Run(ctx)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	ctx, id := debug.WithRequest(ctx)

	switch {
	case me.useOffset && me.visual:
		return errors.New("--offset and --visual cannot be combined")
	case me.useOffset && me.offset < 0:
		return errors.Errorf("offset %d is negative", me.offset)
	case me.row < 0 || me.column < 0:
		return errors.Errorf("position %d:%d is negative", me.row, me.column)
	}

	tmpl, err := workspace.Open(ctx, me.fs, me.filePath, me.configPath)
	if err != nil {
		return err
	}

	pos := position.New(me.row, me.column)
	switch {
	case me.useOffset:
		pos = position.FromOffset(tmpl.Text, me.offset)
	case me.visual:
		width, err := me.visualTabWidth()
		if err != nil {
			return err
		}
		pos.Column = position.FromVisualColumn(tmpl.Document.LineText(me.row), me.column, width)
	}

	zerolog.Ctx(ctx).Debug().
		Str("request_id", id).
		Str("file", me.filePath).
		Stringer("position", pos).
		Int("offset", position.ToOffset(tmpl.Text, pos)).
		Msg("inspecting")

	res := completion.Inspect(ctx, tmpl.Document, pos, tmpl.Document, completion.WithTable(tmpl.Table))

	if err := json.NewEncoder(me.out).Encode(res); err != nil {
		return errors.Errorf("failed to encode result: %w", err)
	}

	return nil
}

func (me *Handler) visualTabWidth() (int, error) {
	if me.tabWidth > 0 {
		return me.tabWidth, nil
	}
	if me.resolveTabWidth == nil {
		return defaultTabWidth, nil
	}

	width, err := me.resolveTabWidth(me.filePath)
	if err != nil {
		return 0, err
	}
	if width <= 0 {
		return defaultTabWidth, nil
	}
	return width, nil
}

func editorconfigTabWidth(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, errors.Errorf("resolving %s: %w", path, err)
	}

	def, err := editorconfig.GetDefinitionForFilename(abs)
	if err != nil {
		return 0, errors.Errorf("reading editorconfig for %s: %w", path, err)
	}

	if def.TabWidth > 0 {
		return def.TabWidth, nil
	}
	if n, err := strconv.Atoi(def.IndentSize); err == nil {
		return n, nil
	}
	return 0, nil
}
