package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/emdiff/emdiff"
	"github.com/spf13/pflag"
)

func main() {

	args, opts, err := emdiff.ParseCommandLine()
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Printf("Could not parse configuration: %s\n\nUse emdiff --help for options\n", err)
		}
		os.Exit(1)
	}

	cmd, errs := emdiff.New(args, opts...)
	if len(errs) > 0 {
		fmt.Println("Error in config:")
		for _, e := range errs {
			fmt.Println(e)
		}
		os.Exit(1)
	}

	if err := cmd.Exec(); err != nil {
		fmt.Println("Comparison error:", err)
		os.Exit(1)
	}

	os.Exit(0)
}
