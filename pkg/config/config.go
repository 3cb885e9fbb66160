package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/marko-inspect/pkg/highlight"
	"github.com/walteh/marko-inspect/pkg/scope"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// FileName is the config file looked up from a template's directory upward.
const FileName = ".marko-inspect.hcl"

// 📝 Config file structure
type Config struct {
	// 🔧 Table markers
	PlainTextScope string `hcl:"plain_text_scope,optional"`
	ScriptSuffix   string `hcl:"script_suffix,optional"`

	// 🎨 Highlighter used when no editor supplies scopes
	Lexer string `hcl:"lexer,optional"`

	// 📂 Globs of the files the inspector accepts
	Files []string `hcl:"files,optional"`

	// 📝 Extra scope names on top of the Marko table
	Scopes []*ScopeBlock `hcl:"scope,block"`
}

type ScopeBlock struct {
	Name    string `hcl:"name,label"`
	Kind    string `hcl:"kind,attr"`
	Concise bool   `hcl:"concise,optional"`
}

func Default() *Config {
	return &Config{
		PlainTextScope: scope.DefaultPlainText,
		ScriptSuffix:   scope.DefaultScriptSuffix,
		Lexer:          highlight.DefaultLexer,
		Files:          []string{"**/*.marko", "**/*.html"},
	}
}

// Load reads an HCL config from fs. Unset fields keep their defaults.
func Load(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	cfg := Default()
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("scopes", len(cfg.Scopes)).
		Strs("files", cfg.Files).
		Msg("loaded config")

	return cfg, nil
}

// Find walks from dir to the filesystem root and loads the first FileName it
// sees. Without one it returns Default.
func Find(ctx context.Context, fs afero.Fs, dir string) (*Config, error) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, FileName)
		ok, err := afero.Exists(fs, candidate)
		if err != nil {
			return nil, errors.Errorf("checking for %s: %w", candidate, err)
		}
		if ok {
			return Load(ctx, fs, candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Table builds the scope table the config describes. Every invalid scope
// block is reported, not just the first.
func (me *Config) Table() (*scope.Table, error) {
	table := scope.DefaultTable().WithMarkers(me.PlainTextScope, me.ScriptSuffix)

	var result *multierror.Error
	for _, block := range me.Scopes {
		kind, err := scope.ParseKind(block.Kind)
		if err != nil {
			result = multierror.Append(result, errors.Errorf("scope %q: %w", block.Name, err))
			continue
		}
		if block.Concise && kind != scope.KindTag {
			result = multierror.Append(result, errors.Errorf("scope %q: only tag scopes can be concise", block.Name))
			continue
		}
		table = table.With(block.Name, scope.Info{Kind: kind, Concise: block.Concise})
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Errorf("invalid scope table: %w", err)
	}

	return table, nil
}

// Matches reports whether path is one of the configured files. Absolute
// paths are matched without their leading slash. A config without globs
// accepts everything.
func (me *Config) Matches(path string) (bool, error) {
	if len(me.Files) == 0 {
		return true, nil
	}

	name := strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, pattern := range me.Files {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, errors.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}
