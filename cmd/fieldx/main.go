package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A missing .env is not an error; the environment may be set directly.
	_ = godotenv.Load()

	command := os.Args[1]
	var err error
	switch command {
	case "dump":
		err = dumpCommand(os.Args[2:], os.Stdin, os.Stdout, os.Stderr)
	case "validate":
		err = validateCommand(os.Args[2:], os.Stdout)
	case "init":
		err = initCommand(os.Args[2:], os.Stdout)
	case "version":
		versionCommand(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  dump      Serialize JSON or YAML input through a schema\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate a schema file\n")
	fmt.Fprintf(os.Stderr, "  init      Write a sample schema file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
