package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/toejough/chatargs"
)

// Exported constants.
const (
	DefaultPrefix = "!"
)

// Exported variables.
var (
	ErrBlankCommand     = errors.New("command name must not be blank")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrNestedSubcommand = errors.New("subcommands cannot have subcommands")
	ErrNoHandler        = errors.New("command has no handler")
	ErrNoPrefix         = errors.New("line does not start with the command prefix")
	ErrUnknownCommand   = errors.New("unknown command")
)

// Option configures a Registry.
type Option func(*Registry)

// Registry holds commands by name and alias.
// Add is not safe for concurrent use; Lookup and Dispatch are, once
// registration is finished.
type Registry struct {
	prefix   string
	logger   *log.Logger
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry returns an empty registry using DefaultPrefix and the default logger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		prefix: DefaultPrefix,
		logger: log.Default(),
		byName: map[string]*Command{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Add registers cmd under its name and aliases.
func (r *Registry) Add(cmd *Command) error {
	keys, err := commandKeys(cmd)
	if err != nil {
		return err
	}

	err = uniqueSubcommands(cmd)
	if err != nil {
		return err
	}

	for _, sub := range cmd.Subcommands {
		if len(sub.Subcommands) > 0 {
			return fmt.Errorf("%w: %s %s", ErrNestedSubcommand, cmd.Name, sub.Name)
		}
	}

	for _, key := range keys {
		if other, ok := r.byName[key]; ok {
			return fmt.Errorf("%w: %s (used by %s)", ErrDuplicateCommand, key, other.Name)
		}
	}

	for _, key := range keys {
		r.byName[key] = cmd
	}

	r.commands = append(r.commands, cmd)
	r.logger.Debug("registered command", "name", cmd.Name, "aliases", cmd.Aliases,
		"subcommands", len(cmd.Subcommands))

	return nil
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	out := slices.Clone(r.commands)
	slices.SortFunc(out, func(a, b *Command) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// Dispatch resolves line to a command, parses its arguments and runs the handler.
// The returned Invocation is nil when resolution or parsing failed. Parse
// failures are returned as *chatargs.ParseError.
func (r *Registry) Dispatch(ctx context.Context, line string) (*Invocation, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(line), r.prefix)
	if !ok {
		return nil, ErrNoPrefix
	}

	cmd, path, args, err := r.Resolve(chatargs.Tokenize(body))
	if err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	logger := r.logger.With("invocation", id, "command", strings.Join(path, " "))

	res, err := chatargs.Parse(ctx, cmd.params(), args)
	if err != nil {
		logger.Debug("parse failed", "err", err)
		return nil, err
	}

	inv := &Invocation{ID: id, Command: cmd, Path: path, Args: args, Result: res}

	if cmd.Run == nil {
		return inv, fmt.Errorf("%w: %s", ErrNoHandler, inv.PathString())
	}

	logger.Debug("running command", "args", res.Names(), "unmatched", res.Unmatched())

	err = cmd.Run(ctx, inv)
	if err != nil {
		logger.Debug("command failed", "err", err)
		return inv, err
	}

	return inv, nil
}

// Lookup finds a command by name or alias, ignoring case.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(name)]

	return cmd, ok
}

// Prefix returns the prefix lines must start with.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Resolve finds the command named by tokens[0], descends into a subcommand when
// tokens[1] names one, and returns the command, its path and the remaining tokens.
func (r *Registry) Resolve(tokens []string) (*Command, []string, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: no command given", ErrUnknownCommand)
	}

	cmd, ok := r.Lookup(tokens[0])
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, tokens[0])
	}

	path := []string{cmd.Name}
	rest := tokens[1:]

	if len(rest) > 0 {
		if sub, ok := cmd.subcommand(rest[0]); ok {
			cmd = sub
			path = append(path, sub.Name)
			rest = rest[1:]
		}
	}

	return cmd, path, rest, nil
}

// WithLogger sets the logger used for registration and dispatch debug output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithPrefix sets the prefix lines must start with, e.g. "!" or "/".
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = prefix
	}
}

// commandKeys returns the lowercase name and aliases of cmd, rejecting blanks
// and repeats within the command itself.
func commandKeys(cmd *Command) ([]string, error) {
	if cmd == nil || strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrBlankCommand
	}

	keys := []string{strings.ToLower(cmd.Name)}

	for _, alias := range cmd.Aliases {
		if strings.TrimSpace(alias) == "" {
			return nil, fmt.Errorf("%w: blank alias on %s", ErrBlankCommand, cmd.Name)
		}

		key := strings.ToLower(alias)
		if slices.Contains(keys, key) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, alias)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

func uniqueSubcommands(cmd *Command) error {
	seen := map[string]string{}

	for _, sub := range cmd.Subcommands {
		keys, err := commandKeys(sub)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Name, err)
		}

		for _, key := range keys {
			if owner, ok := seen[key]; ok {
				return fmt.Errorf("%w: %s %s (used by %s)", ErrDuplicateCommand, cmd.Name, key, owner)
			}

			seen[key] = sub.Name
		}
	}

	return nil
}
