package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/osse101/FarmBot_Go/internal/config"
)

const (
	toolName       = "devtool"
	envDatabaseURL = "DATABASE_URL"
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry maps subcommand names to commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp writes usage, the registered commands and the environment they read
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [args...]\n\nCommands:\n", toolName)

	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Name()))
	}
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name(), cmd.Description())
	}

	fmt.Fprintf(w, "\nEnvironment (.env is loaded when present):\n  %s, %s, NO_COLOR\n",
		envDatabaseURL, config.KeyDataDir)
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "-h", "--help":
		return true
	}
	return false
}

func databaseURL() (string, error) {
	url := os.Getenv(envDatabaseURL)
	if url == "" {
		return "", fmt.Errorf("%s is not set", envDatabaseURL)
	}
	return url, nil
}
