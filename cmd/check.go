package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wkalt/bop/dynamic"
)

var checkCmd = &cobra.Command{
	Use:   "check [schema files...]",
	Short: "Parse and validate schema files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSchema(args)
		registry, err := dynamic.New(s)
		checkErr(err)
		fmt.Print(s.String())
		opcodes := registry.Opcodes()
		if len(opcodes) > 0 {
			fmt.Println()
			for _, op := range opcodes {
				name, _ := registry.ByOpcode(op)
				fmt.Printf("0x%08x %s\n", op, name)
			}
		}
		fmt.Printf("%s %d files, %d definitions\n", color.GreenString("ok:"), len(s.Files), len(s.Definitions))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
