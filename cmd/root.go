package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wkalt/bop/schema"
	"github.com/wkalt/bop/util/log"
)

var (
	rootDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bop",
	Short: "bop schema compiler and codec tools",
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		log.Setup(os.Stderr, level)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

// diagnose prints err, highlighting the position and category of schema
// errors, and exits.
func diagnose(err error) {
	var serr *schema.Error
	if errors.As(err, &serr) {
		fmt.Fprintf(os.Stderr, "%s: %s", color.New(color.Bold).Sprint(serr.Pos), color.RedString(serr.Err.Error()))
		if serr.Detail != "" {
			fmt.Fprintf(os.Stderr, ": %s", serr.Detail)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
	bailf("%v", err)
}

func checkErr(err error) {
	if err != nil {
		diagnose(err)
	}
}

// schemaFS returns the file system schemas resolve against and the given
// paths made relative to it.
func schemaFS(paths []string) (fs.FS, []string) {
	root, err := filepath.Abs(rootDir)
	checkErr(err)
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		checkErr(err)
		r, err := filepath.Rel(root, abs)
		checkErr(err)
		if !fs.ValidPath(filepath.ToSlash(r)) {
			bailf("%s is outside of root %s", p, rootDir)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return os.DirFS(root), rel
}

func loadSchema(paths []string) *schema.Schema {
	fsys, roots := schemaFS(paths)
	s, err := schema.Load(fsys, roots...)
	checkErr(err)
	return s
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "", ".", "root directory schema files and imports resolve against")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}
