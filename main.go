// main is the entrypoint for the trackstat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dugoutlab/trackstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
