// Package command registers chat commands, resolves a typed line to a command
// (and at most one level of subcommand) and runs its handler with the parsed
// arguments.
package command

import (
	"context"
	"strings"

	"github.com/toejough/chatargs"
)

// Command is one registered chat command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	// Params is the command's parameter set. Nil means the command takes none.
	Params *chatargs.Set
	// Subcommands are matched against the first token after the command name.
	// They may not have subcommands of their own.
	Subcommands []*Command
	Run         Handler
}

// Handler runs a command after its arguments parsed successfully.
type Handler func(ctx context.Context, inv *Invocation) error

// Invocation is one parsed use of a command. It is never shared between calls.
type Invocation struct {
	// ID identifies the invocation in logs.
	ID      string
	Command *Command
	// Path is the command name followed by the subcommand name, if any.
	Path []string
	// Args are the tokens that were parsed against the command's parameters.
	Args   []string
	Result *chatargs.Result
}

// PathString returns the path joined by spaces, e.g. "tag add".
func (inv *Invocation) PathString() string {
	return strings.Join(inv.Path, " ")
}

// matches reports whether name is the command's name or one of its aliases.
func (c *Command) matches(name string) bool {
	if strings.EqualFold(c.Name, name) {
		return true
	}

	for _, alias := range c.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}

	return false
}

func (c *Command) params() *chatargs.Set {
	if c.Params == nil {
		return chatargs.NewSet()
	}

	return c.Params
}

func (c *Command) subcommand(name string) (*Command, bool) {
	for _, sub := range c.Subcommands {
		if sub.matches(name) {
			return sub, true
		}
	}

	return nil, false
}
