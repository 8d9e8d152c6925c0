// Package main is the entry point of the cycle nutrition server.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"github.com/cycle-nutrition/server/internal"
)

func main() {
	internal.Init()
}
