package main

import "github.com/wkalt/bop/cmd"

func main() {
	cmd.Execute()
}
