package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&CheckServerCommand{})
	registry.Register(&MigrateCommand{})
	registry.Register(&SeedCommand{})
	registry.Register(&ValidateSeedCommand{})
	registry.Register(&WaitForDBCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}
	if isHelp(os.Args[1]) {
		registry.PrintHelp(os.Stdout)
		return
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
