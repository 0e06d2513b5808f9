// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the tabchat command line with cobra.

# Commands

	tabchat                     open the terminal UI
	tabchat tui                 same as above
	tabchat repl                line REPL with /new, /switch, /rename ...
	tabchat ask MESSAGE         one exchange, reply printed to stdout
	tabchat jobs list|show|apply|applications
	tabchat config init|show
	tabchat version

Global flags are --config PATH and --verbose. Configuration is loaded
lazily, so commands such as `config init` work before a config file exists.

# Usage

	func main() {
		os.Exit(cli.Execute())
	}
*/
package cli
