package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wkalt/bop/compiler"
	"github.com/wkalt/bop/config"
)

var (
	generateConfig  string
	generatePackage string
	generateOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate [schema files...]",
	Short: "Generate Go code from schema files",
	Long: `Generate Go code from schema files.

With no arguments, targets are read from a configuration file (bop.yaml by
default). Otherwise the given schema files are compiled into the package named
by --package and written to --out.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if len(args) == 0 {
			cfg, err := config.Load(generateConfig)
			checkErr(err)
			for _, target := range cfg.Targets {
				artifacts, err := compiler.BuildTarget(ctx, cfg, target)
				checkErr(err)
				checkErr(compiler.Write(ctx, "", artifacts))
			}
			return
		}
		if generatePackage == "" || generateOut == "" {
			bailf("--package and --out are required when schema files are given")
		}
		fsys, roots := schemaFS(args)
		artifacts, err := compiler.Build(ctx, fsys, roots, compiler.Options{Package: generatePackage})
		checkErr(err)
		checkErr(compiler.Write(ctx, generateOut, artifacts))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.PersistentFlags().StringVarP(&generateConfig, "config", "c", config.DefaultFile, "configuration file")
	generateCmd.PersistentFlags().StringVarP(&generatePackage, "package", "p", "", "Go package name")
	generateCmd.PersistentFlags().StringVarP(&generateOut, "out", "o", "", "output directory")
}
