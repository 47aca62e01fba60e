package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/blueprintvc/bpvc/internal/commands"
)

var version = "dev"

func main() {
	root := commands.NewRootCmd(versionString())
	if err := root.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, commands.ErrUnresolved) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func versionString() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return version
	}
	return info.Main.Version
}
