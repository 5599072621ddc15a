package main

import (
	"fmt"
	"os"

	"house-price-predictor/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hpp: %v\n", err)
		os.Exit(1)
	}
}
