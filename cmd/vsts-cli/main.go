package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("vsts-cli %s\n", Version)
			return
		case "tool":
			// Handle vsts-cli tool subcommand
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "Error: tool subcommand requires an action")
				fmt.Fprintln(os.Stderr, "Usage: vsts-cli tool fetch [options]")
				os.Exit(1)
			}
			switch os.Args[2] {
			case "fetch":
				if err := runToolFetch(os.Args[3:]); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
			default:
				fmt.Fprintf(os.Stderr, "Error: unknown tool action: %s\n", os.Args[2])
				fmt.Fprintln(os.Stderr, "Usage: vsts-cli tool fetch [options]")
				os.Exit(1)
			}
			return
		}
	}

	// Default: show help
	fmt.Println("vsts-cli - Azure DevOps command-line helper")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vsts-cli --version               Show version information")
	fmt.Println("  vsts-cli tool fetch [options]    Fetch the ArtifactTool binary")
}
