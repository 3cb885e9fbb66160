// Package workspace loads a template and the config that governs it for the
// command line tools.
package workspace

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/marko-inspect/pkg/config"
	"github.com/walteh/marko-inspect/pkg/highlight"
	"github.com/walteh/marko-inspect/pkg/scope"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Template is a highlighted file together with the scope table its config
// describes.
type Template struct {
	Path     string
	Text     string
	Config   *config.Config
	Table    *scope.Table
	Document *highlight.Document
}

// Open reads path from fs and highlights it. When configPath is empty the
// config is searched for from the file's directory upward.
func Open(ctx context.Context, fs afero.Fs, path, configPath string) (*Template, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(ctx, fs, configPath)
	} else {
		cfg, err = config.Find(ctx, fs, filepath.Dir(path))
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	ok, err := cfg.Matches(path)
	if err != nil {
		return nil, errors.Errorf("checking file globs: %w", err)
	}
	if !ok {
		return nil, errors.Errorf("%s is not matched by any of %v", path, cfg.Files)
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	text, err := ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	doc, err := highlight.NewDocument(ctx, text,
		highlight.WithLexer(cfg.Lexer),
		highlight.WithPlainText(cfg.PlainTextScope),
	)
	if err != nil {
		return nil, errors.Errorf("highlighting %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("rows", len(doc.Lines)).
		Int("scope_entries", table.Len()).
		Msg("opened template")

	return &Template{
		Path:     path,
		Text:     text,
		Config:   cfg,
		Table:    table,
		Document: doc,
	}, nil
}

func ReadFile(fs afero.Fs, path string) (_ string, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", errors.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}
