// Package cli implements the bleconsole command-line interface.
//
// The root command is "bleconsole" with subcommands:
//
//	bleconsole run               - Boot the console and feed it demo scans
//	bleconsole render            - Print demo cards once and dump the panel
//	bleconsole config show|init|set - Inspect or edit bleconsole.yaml
//	bleconsole version           - Print version information
//
// Every command loads the config once at startup (--config, else
// ./bleconsole.yaml, else ~/.config/bleconsole/config.yaml, else defaults)
// and validates it before touching the panel. Nothing is reconfigured while
// the console runs; "config set" only edits the file for the next start.
//
// The panel is an in-memory framebuffer. "run" mirrors it in the terminal
// with a Bubble Tea program when stdout is a terminal and logs scan results
// otherwise.
package cli
