package main

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/toejough/chatargs"
	"github.com/toejough/chatargs/command"
	"github.com/toejough/chatargs/manifest"
	"github.com/toejough/chatargs/render"
)

//go:embed builtin.yaml
var builtinManifest string

// shell reads chat lines and dispatches them.
type shell struct {
	registry *command.Registry
	render   *render.Renderer
	logger   *log.Logger
	out      io.Writer
	source   command.Source
}

// handle dispatches one line and reports failures.
func (sh *shell) handle(ctx context.Context, line string) {
	_, err := sh.registry.Dispatch(ctx, line)
	if err == nil {
		return
	}

	if errors.Is(err, command.ErrNoPrefix) {
		sh.logger.Debug("not a command", "line", line)
		return
	}

	fmt.Fprintln(sh.out, sh.render.Failure(err))

	var perr *chatargs.ParseError
	if !errors.As(err, &perr) {
		return
	}

	body := strings.TrimPrefix(line, sh.registry.Prefix())

	cmd, path, _, rerr := sh.registry.Resolve(chatargs.Tokenize(body))
	if rerr == nil {
		fmt.Fprintln(sh.out, sh.render.Usage(strings.Join(path, " "), cmd.Params))
	}
}

// printResult is the handler of manifest commands: it shows what was parsed.
func (sh *shell) printResult(_ context.Context, inv *command.Invocation) error {
	fmt.Fprintf(sh.out, "%s:\n", inv.PathString())

	for _, name := range inv.Result.Names() {
		v, _ := inv.Result.Get(name)
		fmt.Fprintf(sh.out, "  %s = %v\n", name, v)
	}

	if unmatched := inv.Result.Unmatched(); len(unmatched) > 0 {
		fmt.Fprintf(sh.out, "  (ignored: %s)\n", strings.Join(unmatched, " "))
	}

	return nil
}

// run reads lines until in is exhausted.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	ctx = command.WithSource(ctx, sh.source)
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sh.handle(ctx, line)
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// loadManifest reads the manifest at path, or the built-in one when path is empty.
func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.LoadString(builtinManifest)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return manifest.Load(f)
}

func newShell(opts *options, logger *log.Logger, out io.Writer) (*shell, error) {
	styles := render.DefaultStyles()
	if opts.plain {
		styles = render.PlainStyles()
	}

	sh := &shell{
		registry: command.NewRegistry(command.WithPrefix(opts.prefix), command.WithLogger(logger)),
		render:   render.New(styles),
		logger:   logger,
		out:      out,
		source:   command.Source{Channel: opts.channel, User: opts.user},
	}

	m, err := loadManifest(opts.manifest)
	if err != nil {
		return nil, err
	}

	handlers := map[string]command.Handler{}
	for _, key := range m.HandlerKeys() {
		handlers[key] = sh.printResult
	}

	err = m.Build(sh.registry, handlers)
	if err != nil {
		return nil, err
	}

	for _, cmd := range []*command.Command{sh.helpCommand(), rollCommand(out), whoisCommand(out)} {
		err = sh.registry.Add(cmd)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("shell ready", "commands", len(sh.registry.Commands()), "prefix", opts.prefix)

	return sh, nil
}
