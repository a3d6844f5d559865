package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagManifest string
	flagVerbose  bool
	flagWatch    bool
)

func main() {
	root := &cobra.Command{
		Use:           "gangway",
		Short:         "Generate TypeScript declarations from Go types or OpenAPI schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagManifest, "manifest", "m", "gangway.yaml", "manifest file driving the generation run")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	gen := &cobra.Command{
		Use:   "gen",
		Short: "Run one generation pass (or keep regenerating with --watch)",
		RunE:  runGen,
	}
	gen.Flags().BoolVarP(&flagWatch, "watch", "w", false, "regenerate whenever inputs change")
	root.AddCommand(gen)

	if err := root.Execute(); err != nil {
		newLogger().Errorf("%+v", err)
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if flagVerbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log.Sugar()
}
