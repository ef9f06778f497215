package main

import (
	"os"

	"project-tracker/backend/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
