// Package main is the entry point for the pce CLI client.
package main

import (
	"github.com/jviciana84/prod-sub002/cmd/pce/cmd"
)

func main() {
	cmd.Execute()
}
