package main

import (
	"fmt"
	"os"

	"github.com/akpradhn/nitiArthik/cmd/batch"
	"github.com/akpradhn/nitiArthik/cmd/parse"
	"github.com/akpradhn/nitiArthik/cmd/root"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
