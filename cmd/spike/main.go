package main

import (
	"fmt"
	"os"

	"spike"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: spike [filename]\n")
		os.Exit(1)
	}

	e := spike.New()

	if len(os.Args) == 2 {
		filename := os.Args[1]
		e.SelectSyntaxHighlight(filename)
		if err := e.Open(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %s\n", filename, err)
			os.Exit(1)
		}
	}

	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
