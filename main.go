package main

import (
	"os"

	"github.com/riskreg/riskreg/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
