package cmd

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wkalt/bop/dynamic"
)

var (
	transcodeSchemas []string
	transcodeType    string
	transcodeHex     bool
	transcodePretty  bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [input]",
	Short: "Decode a binary value to JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := loadRegistry()
		input := readInput(args)
		if transcodeHex {
			input = decodeHex(input)
		}
		out, err := registry.ToJSON(transcodeType, input)
		checkErr(err)
		if transcodePretty {
			buf := &bytes.Buffer{}
			checkErr(json.Indent(buf, out, "", "  "))
			out = buf.Bytes()
		}
		_, err = os.Stdout.Write(append(out, '\n'))
		checkErr(err)
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode [input]",
	Short: "Encode a JSON value to binary",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !transcodeHex && !stdoutRedirected() {
			bailf("Binary output can screw up your terminal. Redirect to a file or use --hex.")
		}
		registry := loadRegistry()
		out, err := registry.FromJSON(transcodeType, readInput(args))
		checkErr(err)
		if transcodeHex {
			out = []byte(hex.EncodeToString(out) + "\n")
		}
		_, err = os.Stdout.Write(out)
		checkErr(err)
	},
}

func loadRegistry() *dynamic.Registry {
	if len(transcodeSchemas) == 0 {
		bailf("at least one --schema is required")
	}
	registry, err := dynamic.New(loadSchema(transcodeSchemas))
	checkErr(err)
	if _, ok := registry.Definition(transcodeType); !ok {
		bailf("unknown type %q", transcodeType)
	}
	return registry
}

// readInput reads the named file, or stdin if none is given.
func readInput(args []string) []byte {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		checkErr(err)
		return data
	}
	data, err := os.ReadFile(args[0])
	checkErr(err)
	return data
}

func decodeHex(input []byte) []byte {
	data, err := hex.DecodeString(strings.Join(strings.Fields(string(input)), ""))
	if err != nil {
		bailf("invalid hex input: %s", err)
	}
	return data
}

// stdoutRedirected returns true if stdout is redirected to a file or pipe.
func stdoutRedirected() bool {
	if fi, err := os.Stdout.Stat(); err == nil {
		return (fi.Mode() & os.ModeCharDevice) == 0
	}
	return false
}

func init() {
	for _, cmd := range []*cobra.Command{decodeCmd, encodeCmd} {
		rootCmd.AddCommand(cmd)
		cmd.PersistentFlags().StringSliceVarP(&transcodeSchemas, "schema", "s", nil, "schema files")
		cmd.PersistentFlags().StringVarP(&transcodeType, "type", "t", "", "definition name")
		cmd.PersistentFlags().BoolVarP(&transcodeHex, "hex", "x", false, "hex input (decode) or output (encode)")
		_ = cmd.MarkPersistentFlagRequired("type")
	}
	decodeCmd.PersistentFlags().BoolVarP(&transcodePretty, "pretty", "", false, "indent JSON output")
}
