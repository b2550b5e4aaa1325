package clikit

// NewCommand creates and returns a new Command object. This function takes variadic `ConfigureCommandFunc` functions to customize the created command.
func NewCommand(configs ...ConfigureCommandFunc) *Command {
	cmd := &Command{}
	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// Set is a helper config function that allows setting multiple configuration functions on a command.
func (c *Command) Set(configs ...ConfigureCommandFunc) {
	for _, config := range configs {
		config(c)
	}
}

// WithName sets the name for the command. The name is used to identify the command and invoke it from the command line.
func WithName(name string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Name = name
	}
}

// WithCallback sets the callback function for the command. This function is run when the command gets executed.
func WithCallback(callback CommandFunc) ConfigureCommandFunc {
	return func(command *Command) {
		command.Callback = callback
	}
}

// WithCommandDescription sets the description for the command. This description helps users to understand what the command does.
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Description = description
	}
}

// WithSubcommands function takes a list of subcommands and associates them with a command.
func WithSubcommands(subcommands ...*Command) ConfigureCommandFunc {
	return func(command *Command) {
		command.Subcommands = append(command.Subcommands, subcommands...)
	}
}

// WithOverwriteSubcommands allows replacing a Command's subcommands.
func WithOverwriteSubcommands(subcommands ...*Command) ConfigureCommandFunc {
	return func(command *Command) {
		command.Subcommands = append([]*Command(nil), subcommands...)
	}
}

// WithFields adds flags and positional arguments to the command
func WithFields(fields ...*Field) ConfigureCommandFunc {
	return func(command *Command) {
		command.Fields = append(command.Fields, fields...)
	}
}

// SetCommandHidden hides the command from help and completion. It can still be invoked.
func SetCommandHidden(hidden bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.Hidden = hidden
	}
}

// WithLoader defers the definition of the command's fields and sub-commands until the command is used.
// Completion scripts list a deferred command by name only; the dynamic engine calls the loader.
func WithLoader(loader Loader) ConfigureCommandFunc {
	return func(command *Command) {
		command.Loader = loader
	}
}
