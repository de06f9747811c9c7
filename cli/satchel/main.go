package main

import (
	"os"

	satchelcmder "github.com/papercomputeco/satchel/cmd/satchel"
)

func main() {
	cmd := satchelcmder.NewSatchelCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
