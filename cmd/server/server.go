// Package main is the entry point of the fitness tracker API.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"fitness-tracker/internal"
)

func main() {
	internal.Init()
}
