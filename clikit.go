// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT licensee
// which can be found in the LICENSE file.

// Package clikit provides command trees with shell tab-completion.
//
// A program describes its commands, flags and positional arguments once:
//
//	root := clikit.NewCommand(
//		clikit.WithName("deployctl"),
//		clikit.WithFields(clikit.NewField("config", clikit.WithAlias("c"), clikit.WithFileCompletion("json"))),
//		clikit.WithSubcommands(deploy))
//	parser, err := clikit.NewParser(root, clikit.WithCompletionCommand())
//
// The same description drives parsing, help output, static completion scripts for bash, zsh and
// fish ("deployctl completion bash") and dynamic completion, where a small shell stub
// ("deployctl completion bash --dynamic") calls back into the program for every completion
// request. Dynamic completion can list sub-commands whose definition is loaded on demand
// (see WithLoader) and values produced by shell commands at completion time.
//
// Flags are written --name or -a. Values follow as the next argument or inline after "=".
// Flags of the root command are accepted by every sub-command. "--" ends flag processing.
package clikit
