package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/toejough/chatargs"
	"github.com/toejough/chatargs/command"
	"github.com/toejough/chatargs/convert"
)

// unexported variables.
var (
	errNoSource   = errors.New("no speaker known for this line")
	errBadDice    = errors.New("want 1 to 100 dice with at least one face")
	errBadMention = errors.New("mentions look like @name or me")
)

// unexported constants.
const (
	maxDice = 100
)

func (sh *shell) helpCommand() *command.Command {
	set := chatargs.NewSet()
	topic := chatargs.Positional("command").Optional().
		Describe("Command to describe").MustRegister(set)

	return &command.Command{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Description: "List commands, or show one command's usage",
		Params:      set,
		Run: func(_ context.Context, inv *command.Invocation) error {
			name, ok := topic.Get(inv.Result)
			if !ok {
				for _, cmd := range sh.registry.Commands() {
					fmt.Fprintf(sh.out, "%s%-8s %s\n", sh.registry.Prefix(), cmd.Name, cmd.Description)
				}

				return nil
			}

			cmd, ok := sh.registry.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %s", command.ErrUnknownCommand, name)
			}

			sh.describe(cmd.Name, cmd)

			for _, sub := range cmd.Subcommands {
				sh.describe(cmd.Name+" "+sub.Name, sub)
			}

			return nil
		},
	}
}

func (sh *shell) describe(path string, cmd *command.Command) {
	fmt.Fprintln(sh.out, sh.render.Usage(path, cmd.Params))

	if cmd.Description != "" {
		fmt.Fprintln(sh.out, "  "+cmd.Description)
	}

	fmt.Fprint(sh.out, sh.render.Parameters(cmd.Params))
}

// mention resolves "me" to the speaker and strips the @ from "@name".
func mention(ctx context.Context, raw string) (string, error) {
	if strings.EqualFold(raw, "me") {
		src, ok := command.SourceFrom(ctx)
		if !ok || src.User == "" {
			return "", errNoSource
		}

		return src.User, nil
	}

	name, ok := strings.CutPrefix(raw, "@")
	if !ok || name == "" {
		return "", errBadMention
	}

	return name, nil
}

func rollCommand(out io.Writer) *command.Command {
	set := chatargs.NewSet()
	dice := chatargs.PositionalOf("dice", convert.Int).Default(1).
		Describe("Number of dice").MustRegister(set)
	sides := chatargs.OptionOf("sides", convert.Int).Short("s").Default(6).
		Describe("Faces per die").MustRegister(set)
	total := chatargs.Flag("total").Short("t").
		Describe("Print only the sum").MustRegister(set)

	return &command.Command{
		Name:        "roll",
		Description: "Roll dice",
		Params:      set,
		Run: func(_ context.Context, inv *command.Invocation) error {
			n, faces := dice.Value(inv.Result), sides.Value(inv.Result)
			if n < 1 || n > maxDice || faces < 1 {
				return fmt.Errorf("%w: %dd%d", errBadDice, n, faces)
			}

			rolls := make([]string, 0, n)
			sum := 0

			for range n {
				r := rand.IntN(faces) + 1
				sum += r
				rolls = append(rolls, fmt.Sprint(r))
			}

			if total.Value(inv.Result) {
				fmt.Fprintln(out, sum)
				return nil
			}

			fmt.Fprintf(out, "%s = %d\n", strings.Join(rolls, " + "), sum)

			return nil
		},
	}
}

func whoisCommand(out io.Writer) *command.Command {
	set := chatargs.NewSet()
	users := chatargs.Multiple(chatargs.PositionalOf("users", mention), 1, chatargs.Unbounded).
		Describe("People to look up: me or @name").MustRegister(set)

	return &command.Command{
		Name:        "whois",
		Description: "Look people up",
		Params:      set,
		Run: func(ctx context.Context, inv *command.Invocation) error {
			src, _ := command.SourceFrom(ctx)

			for _, user := range users.Value(inv.Result) {
				fmt.Fprintf(out, "%s is in #%s\n", user, src.Channel)
			}

			return nil
		},
	}
}
