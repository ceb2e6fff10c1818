// Command registryctl is the operator tool for the contribution registry.
package main

import (
	"os"

	"github.com/chiboi241-boop/EduScience/cmd/registryctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
