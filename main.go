package main

import (
	"log"

	"daosweep/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
