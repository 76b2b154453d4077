// Package main provides the ace CLI for laying out scene files headlessly.
//
// Usage:
//
//	ace layout [options] scene.yaml   Lay out a scene once and print the tree
//	ace watch [options] scene.yaml    Re-lay out the scene on every save
//	ace config [-config file]         Print the effective settings
//	ace help                          Show help
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `ace - headless layout for declarative scene files

Usage:
  ace <command> [options] [scene]

Commands:
  layout      Lay out a scene once and print the node tree
  watch       Lay out a scene and again whenever the file changes
  config      Print the effective settings as TOML
  version     Print version information
  help        Show this help message

Options:
  -config     TOML settings file (frame rate, root size, gestures, logging)
  -format     Output for layout: text, yaml or json
  -width      Root width, overriding the settings
  -height     Root height, overriding the settings

Examples:
  ace layout list.yaml                    Print the laid out tree
  ace layout -format yaml list.yaml       Print the tree as YAML
  ace layout -width 400 -height 800 x.yaml
  ace watch -config ace.toml list.yaml    Re-print on every save
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "layout":
		if err := runLayout(args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "config":
		if err := runConfig(args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("ace version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
