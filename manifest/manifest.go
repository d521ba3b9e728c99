// Package manifest declares chat commands from a YAML document.
//
//	commands:
//	  - name: remind
//	    aliases: [r]
//	    description: Set a reminder
//	    params:
//	      - {name: in, kind: option, short: i, convert: duration}
//	      - {name: message, kind: positional, min: 1, max: 0, collect: sentence}
//
// Each param becomes a chatargs parameter built through the same builder a Go
// declaration would use, so a manifest command parses exactly like a hand-written one.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/toejough/chatargs"
	"github.com/toejough/chatargs/command"
	"github.com/toejough/chatargs/convert"
)

// Exported variables.
var (
	ErrUnknownCollector = errors.New("unknown collector")
	ErrUnknownConverter = errors.New("unknown converter")
	ErrUnknownHandler   = errors.New("unknown handler")
	ErrUnknownKind      = errors.New("unknown parameter kind")
)

// CommandDef declares one command.
type CommandDef struct {
	Name        string       `yaml:"name"`
	Aliases     []string     `yaml:"aliases"`
	Description string       `yaml:"description"`
	// Handler names the entry in the handler map. Defaults to the command name,
	// or "parent sub" for subcommands.
	Handler     string       `yaml:"handler"`
	Params      []ParamDef   `yaml:"params"`
	Subcommands []CommandDef `yaml:"subcommands"`
}

// Manifest is a whole YAML document.
type Manifest struct {
	Commands []CommandDef `yaml:"commands"`
}

// Build registers every command of the manifest with reg. Handlers are looked
// up by CommandDef.Handler; a command without a handler entry is rejected.
func (m *Manifest) Build(reg *command.Registry, handlers map[string]command.Handler) error {
	for _, def := range m.Commands {
		cmd, err := def.build("", handlers)
		if err != nil {
			return err
		}

		err = reg.Add(cmd)
		if err != nil {
			return err
		}
	}

	return nil
}

// HandlerKeys returns the handler key of every command that needs one, in
// document order: leaf commands and subcommands, not parents of subcommands.
func (m *Manifest) HandlerKeys() []string {
	var keys []string

	var walk func(parent string, defs []CommandDef)

	walk = func(parent string, defs []CommandDef) {
		for _, def := range defs {
			if len(def.Subcommands) > 0 {
				walk(def.Name, def.Subcommands)
				continue
			}

			keys = append(keys, def.handlerKey(parent))
		}
	}

	walk("", m.Commands)

	return keys
}

// ParamDef declares one parameter.
type ParamDef struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"` // flag, option or positional
	Short       string `yaml:"short"`
	Description string `yaml:"description"`
	// Min and Max set a token range. When neither is given the parameter takes
	// exactly one token. Max 0 is unbounded.
	Min      *int   `yaml:"min"`
	Max      *int   `yaml:"max"`
	Optional bool   `yaml:"optional"`
	// Default is converted with the parameter's converter when the manifest is built.
	Default *string `yaml:"default"`
	// Convert names a converter: string (default), int, float, bool, duration,
	// glob, nonempty.
	Convert string `yaml:"convert"`
	// Choices restricts values to a case-insensitive set. Overrides Convert.
	Choices []string `yaml:"choices"`
	// Join joins the consumed range into one string before converting.
	Join bool `yaml:"join"`
	// Collect names a batch collector for ranged params: sentence or words.
	Collect string `yaml:"collect"`
}

// Load decodes a manifest.
func Load(r io.Reader) (*Manifest, error) {
	var m Manifest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&m)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	return &m, nil
}

// LoadString decodes a manifest held in a string.
func LoadString(doc string) (*Manifest, error) {
	return Load(strings.NewReader(doc))
}

func (d CommandDef) build(parent string, handlers map[string]command.Handler) (*command.Command, error) {
	key := d.handlerKey(parent)
	set := chatargs.NewSet()

	for _, p := range d.Params {
		err := p.declare(set)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", d.Name, err)
		}
	}

	cmd := &command.Command{
		Name:        d.Name,
		Aliases:     d.Aliases,
		Description: d.Description,
		Params:      set,
	}

	for _, subDef := range d.Subcommands {
		sub, err := subDef.build(d.Name, handlers)
		if err != nil {
			return nil, err
		}

		cmd.Subcommands = append(cmd.Subcommands, sub)
	}

	handler, ok := handlers[key]
	if !ok && len(cmd.Subcommands) == 0 {
		return nil, fmt.Errorf("%w: %q for command %s", ErrUnknownHandler, key, d.Name)
	}

	cmd.Run = handler

	return cmd, nil
}

func (d CommandDef) handlerKey(parent string) string {
	if d.Handler != "" {
		return d.Handler
	}

	return strings.TrimSpace(parent + " " + d.Name)
}

func (p ParamDef) cardinality() (int, int, bool) {
	if p.Min == nil && p.Max == nil {
		return 1, 1, false
	}

	minCount, maxCount := 1, chatargs.Unbounded
	if p.Min != nil {
		minCount = *p.Min
	}

	if p.Max != nil {
		maxCount = *p.Max
	}

	return minCount, maxCount, true
}

// declare registers p in set.
func (p ParamDef) declare(set *chatargs.Set) error {
	if len(p.Choices) > 0 {
		return declareTyped(set, p, convert.OneOf(p.Choices...))
	}

	switch p.Convert {
	case "", "string":
		return declareTyped(set, p, chatargs.Converter[string](chatargs.Identity))
	case "int":
		return declareTyped(set, p, chatargs.Converter[int](convert.Int))
	case "float":
		return declareTyped(set, p, chatargs.Converter[float64](convert.Float))
	case "bool":
		return declareTyped(set, p, chatargs.Converter[bool](convert.Bool))
	case "duration":
		return declareTyped(set, p, chatargs.Converter[time.Duration](convert.Duration))
	case "glob":
		return declareTyped(set, p, chatargs.Converter[string](convert.Glob))
	case "nonempty":
		return declareTyped(set, p, chatargs.Converter[string](convert.NonEmpty))
	default:
		return fmt.Errorf("%w: %q on %s", ErrUnknownConverter, p.Convert, p.Name)
	}
}

// declareTyped builds and registers p with a converter producing T.
func declareTyped[T any](set *chatargs.Set, p ParamDef, conv chatargs.Converter[T]) error {
	var spec chatargs.Spec[T]

	switch p.Kind {
	case "flag":
		flag := chatargs.Flag(p.Name).Describe(describe(p))
		if p.Short != "" {
			flag = flag.Short(p.Short)
		}

		_, err := flag.Register(set)

		return err
	case "option", "":
		spec = chatargs.OptionOf(p.Name, conv)
		if p.Short != "" {
			spec = spec.Short(p.Short)
		}
	case "positional":
		spec = chatargs.PositionalOf(p.Name, conv)
	default:
		return fmt.Errorf("%w: %q on %s", ErrUnknownKind, p.Kind, p.Name)
	}

	spec = spec.Describe(describe(p))

	if p.Optional {
		spec = spec.Optional()
	}

	minCount, maxCount, ranged := p.cardinality()

	switch {
	case p.Collect != "":
		return declareCollected(set, p, spec, minCount, maxCount)
	case ranged && p.Join:
		spec = spec.Join(minCount, maxCount)
	case ranged:
		multi := chatargs.Multiple(spec, minCount, maxCount)

		if p.Default != nil {
			def, err := convertEach(conv, strings.Fields(*p.Default))
			if err != nil {
				return fmt.Errorf("default for %s: %w", p.Name, err)
			}

			multi = multi.Default(def)
		}

		_, err := multi.Register(set)

		return err
	}

	if p.Default != nil {
		def, err := conv(context.Background(), *p.Default)
		if err != nil {
			return fmt.Errorf("default for %s: %w", p.Name, err)
		}

		spec = spec.Default(def)
	}

	_, err := spec.Register(set)

	return err
}

func declareCollected[T any](
	set *chatargs.Set,
	p ParamDef,
	spec chatargs.Spec[T],
	minCount, maxCount int,
) error {
	switch p.Collect {
	case "sentence":
		return registerCollected(set, p, chatargs.Collect(spec, minCount, maxCount,
			chatargs.BatchConverter[string](convert.Sentence)), convert.Sentence)
	case "words":
		return registerCollected(set, p, chatargs.Collect(spec, minCount, maxCount,
			chatargs.BatchConverter[[]string](convert.Words)), convert.Words)
	default:
		return fmt.Errorf("%w: %q on %s", ErrUnknownCollector, p.Collect, p.Name)
	}
}

func convertEach[T any](conv chatargs.Converter[T], raw []string) ([]T, error) {
	out := make([]T, 0, len(raw))

	for _, token := range raw {
		v, err := conv(context.Background(), token)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func describe(p ParamDef) string {
	if p.Description == "" {
		return chatargs.DefaultDescription
	}

	return p.Description
}

func registerCollected[R any](
	set *chatargs.Set,
	p ParamDef,
	spec chatargs.Spec[R],
	batch chatargs.BatchConverter[R],
) error {
	if p.Default != nil {
		def, err := batch(context.Background(), strings.Fields(*p.Default))
		if err != nil {
			return fmt.Errorf("default for %s: %w", p.Name, err)
		}

		spec = spec.Default(def)
	}

	_, err := spec.Register(set)

	return err
}
