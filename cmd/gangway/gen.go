package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/utrack/gangway/bind"
	"github.com/utrack/gangway/gosrc"
	"github.com/utrack/gangway/manifest"
	"github.com/utrack/gangway/oas"
	"github.com/utrack/gangway/render"
)

func runGen(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	if flagWatch {
		return watch(log)
	}

	m, err := manifest.Load(flagManifest)
	if err != nil {
		return err
	}
	return generate(m, log)
}

// generate is one whole pass: a fresh registry is populated by the
// configured frontends, the closure of every root is collected, rendered
// and written out. Any failure aborts with nothing written.
func generate(m *manifest.Manifest, log *zap.SugaredLogger) error {
	reg := bind.Builtin()

	var roots []string
	if m.Go != nil {
		ids, err := gosrc.Register(reg, gosrc.Config{
			Dir:      m.Go.Dir,
			Patterns: m.Go.Packages,
			Roots:    m.Go.Roots,
		})
		if err != nil {
			return errors.Wrap(err, "deriving from Go source")
		}
		log.Debugw("derived Go roots", "count", len(ids))
		roots = append(roots, ids...)
	}
	if m.OpenAPI != nil {
		ids, err := oas.RegisterFile(reg, m.OpenAPI.File)
		if err != nil {
			return errors.Wrap(err, "deriving from OpenAPI document")
		}
		log.Debugw("derived OpenAPI roots", "count", len(ids))
		roots = append(roots, ids...)
	}
	if len(roots) == 0 {
		return errors.New("no root types derived; nothing to generate")
	}

	ds, err := reg.Closure(roots...)
	if err != nil {
		return errors.Wrap(err, "collecting declaration closure")
	}

	var opts []render.Option
	if m.Indent > 0 {
		opts = append(opts, render.WithIndentWidth(m.Indent))
	}
	if m.InterfacePrefix != "" {
		opts = append(opts, render.WithInterfaceNames(render.Prefixed(m.InterfacePrefix)))
	}
	src := render.Declarations(ds, opts...)

	if err := os.WriteFile(m.Out, []byte(src), 0644); err != nil {
		return errors.Wrapf(err, "writing '%v'", m.Out)
	}
	log.Infow("generated", "roots", len(roots), "declarations", len(ds), "out", m.Out)
	return nil
}
