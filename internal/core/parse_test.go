package core_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/chatargs/internal/core"
)

func TestParse(t *testing.T) {
	t.Parallel()

	intConv := core.Plain(strconv.Atoi)

	t.Run("GreedyOptionStopsAtNextOption", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		tags := core.Multiple(core.Option("tags"), 1, core.Unbounded).MustRegister(set)
		verbose := core.Flag("verbose").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"--tags", "a", "b", "--verbose"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(tags.Value(res)).To(Equal([]string{"a", "b"}))
		g.Expect(verbose.Value(res)).To(BeTrue())
	})

	t.Run("GreedyStopsAtMax", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		first := core.Multiple(core.Positional("first"), 1, 2).MustRegister(set)
		rest := core.Positional("rest").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"a", "b", "c"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(first.Value(res)).To(Equal([]string{"a", "b"}))
		g.Expect(rest.Value(res)).To(Equal("c"))
	})

	t.Run("InsufficientNotMissing", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Multiple(core.Option("tags"), 2, 3).MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--tags", "a"})
		g.Expect(err).To(MatchError(core.ErrInsufficient))
		g.Expect(errors.Is(err, core.ErrMissing)).To(BeFalse())

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Kind).To(Equal(core.FailureInsufficient))
		g.Expect(perr.Names()).To(Equal([]string{"tags"}))
		g.Expect(perr.Count).To(Equal(1))
		g.Expect(perr.Raw).To(Equal("a"))
	})

	t.Run("InsufficientPositional", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Multiple(core.Positional("pair"), 2, 2).MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"a", "--x"})
		g.Expect(err).To(MatchError(core.ErrInsufficient))
	})

	t.Run("MissingIsBatched", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Positional("a").MustRegister(set)
		core.Flag("quiet").MustRegister(set)
		core.OptionOf("b", intConv).MustRegister(set)
		core.Option("c").Optional().MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--quiet"})
		g.Expect(err).To(MatchError(core.ErrMissing))

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Names()).To(Equal([]string{"a", "b"}))
		g.Expect(perr.Error()).To(Equal("missing required argument: a, b"))
	})

	t.Run("InvalidHidesConverterError", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.OptionOf("count", intConv).MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--count", "abc"})
		g.Expect(err).To(MatchError(core.ErrInvalid))
		g.Expect(errors.Is(err, strconv.ErrSyntax)).To(BeFalse())

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Param().Name()).To(Equal("count"))
		g.Expect(perr.Raw).To(Equal("abc"))
	})

	t.Run("InvalidCarriesJoinedRawText", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Multiple(core.OptionOf("nums", intConv), 1, core.Unbounded).MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--nums", "1", "two", "3"})

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Kind).To(Equal(core.FailureInvalid))
		g.Expect(perr.Raw).To(Equal("1 two 3"))
	})

	t.Run("PanickingConverterIsInvalid", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.OptionOf("boom", core.Plain(func(string) (int, error) { panic("no") })).MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--boom", "x"})
		g.Expect(err).To(MatchError(core.ErrInvalid))
	})

	t.Run("FailFastStopsAtFirstFailure", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.OptionOf("a", intConv).MustRegister(set)
		core.OptionOf("b", intConv).MustRegister(set)
		core.Positional("required").MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--a", "x", "--b"})

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Kind).To(Equal(core.FailureInvalid))
		g.Expect(perr.Names()).To(Equal([]string{"a"}))
	})

	t.Run("OptionalDefaultRoundTrip", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		n := core.OptionOf("n", intConv).Default(5).MustRegister(set)

		res, err := core.Parse(context.Background(), set, nil)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(n.Value(res)).To(Equal(5))

		res, err = core.Parse(context.Background(), set, []string{"--n", "7"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(n.Value(res)).To(Equal(7))
	})

	t.Run("OptionalWithoutDefaultIsOmitted", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		name := core.Option("name").Optional().MustRegister(set)
		tags := core.Multiple(core.Option("tags"), 1, core.Unbounded).Optional().MustRegister(set)

		res, err := core.Parse(context.Background(), set, nil)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Len()).To(BeZero())

		_, ok := name.Get(res)
		g.Expect(ok).To(BeFalse())
		g.Expect(res.Has(tags.Name())).To(BeFalse())
	})

	t.Run("AbsentFlagIsFalseNotMissing", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		verbose := core.Flag("verbose").MustRegister(set)

		res, err := core.Parse(context.Background(), set, nil)
		g.Expect(err).NotTo(HaveOccurred())

		v, ok := verbose.Get(res)
		g.Expect(ok).To(BeTrue())
		g.Expect(v).To(BeFalse())
	})

	t.Run("ShortAliases", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		name := core.Option("name").Short("n").MustRegister(set)
		verbose := core.Flag("verbose").Short("v").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"-v", "-n", "bob"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(name.Value(res)).To(Equal("bob"))
		g.Expect(verbose.Value(res)).To(BeTrue())
	})

	t.Run("EmptyWhenValueMissing", func(t *testing.T) {
		t.Parallel()

		cases := map[string][]string{
			"EndOfInput":     {"--count"},
			"NextIsOption":   {"--count", "--verbose"},
			"NextIsShort":    {"--count", "-v"},
			"NegativeNumber": {"--count", "-5"},
		}

		for name, tokens := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				g := NewWithT(t)

				set := core.NewSet()
				core.OptionOf("count", intConv).MustRegister(set)
				core.Flag("verbose").Short("v").MustRegister(set)

				_, err := core.Parse(context.Background(), set, tokens)
				g.Expect(err).To(MatchError(core.ErrEmpty))
				g.Expect(err.Error()).To(Equal("option requires a value: --count"))
			})
		}
	})

	t.Run("OptionalSingleOptionStillNeedsValue", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Option("name").Optional().MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--name"})
		g.Expect(err).To(MatchError(core.ErrEmpty))
	})

	t.Run("ExactlyOneValueOptionNeedsValue", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Multiple(core.Option("x"), 1, 1).MustRegister(set)
		core.Flag("y").MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"--x", "--y"})
		g.Expect(err).To(MatchError(core.ErrEmpty))
		g.Expect(errors.Is(err, core.ErrMissing)).To(BeFalse())
	})

	t.Run("MultiOptionWithNothingFallsBackToDefault", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		tags := core.Multiple(core.Option("tags"), 1, core.Unbounded).
			Default([]string{"none"}).MustRegister(set)
		core.Flag("verbose").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"--tags", "--verbose"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(tags.Value(res)).To(Equal([]string{"none"}))
	})

	t.Run("SkippedMultiOptionCanBeSatisfiedLater", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		tags := core.Multiple(core.Option("tags"), 1, core.Unbounded).MustRegister(set)
		core.Flag("verbose").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"--tags", "--verbose", "--tags", "x"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(tags.Value(res)).To(Equal([]string{"x"}))
	})

	t.Run("PositionalsKeepDeclarationOrder", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		a := core.Positional("a").MustRegister(set)
		b := core.Positional("b").MustRegister(set)
		opt := core.Option("opt").Optional().MustRegister(set)

		for _, tokens := range [][]string{
			{"x", "y"},
			{"--opt", "v", "x", "y"},
			{"x", "--opt", "v", "y"},
			{"x", "y", "--opt", "v"},
		} {
			res, err := core.Parse(context.Background(), set, tokens)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(a.Value(res)).To(Equal("x"), "tokens %v", tokens)
			g.Expect(b.Value(res)).To(Equal("y"), "tokens %v", tokens)

			if len(tokens) > 2 {
				g.Expect(opt.Value(res)).To(Equal("v"))
			}
		}
	})

	t.Run("UnboundedPositionalStarvesLaterOne", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Multiple(core.Positional("words"), 1, core.Unbounded).MustRegister(set)
		core.Positional("last").MustRegister(set)

		_, err := core.Parse(context.Background(), set, []string{"a", "b", "c"})

		var perr *core.ParseError
		g.Expect(errors.As(err, &perr)).To(BeTrue())
		g.Expect(perr.Kind).To(Equal(core.FailureMissing))
		g.Expect(perr.Names()).To(Equal([]string{"last"}))
	})

	t.Run("OptionEndsUnboundedPositional", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		words := core.Multiple(core.Positional("words"), 1, core.Unbounded).MustRegister(set)
		last := core.Positional("last").MustRegister(set)
		core.Flag("x").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"a", "b", "-x", "c"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(words.Value(res)).To(Equal([]string{"a", "b"}))
		g.Expect(last.Value(res)).To(Equal("c"))
	})

	t.Run("UnmatchedTokensAreRecorded", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		core.Positional("target").MustRegister(set)
		core.Flag("force").MustRegister(set)

		res, err := core.Parse(context.Background(), set,
			[]string{"--nope", "bob", "--force", "extra", "--force", "--", "-q"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Names()).To(Equal([]string{"force", "target"}))
		g.Expect(res.Unmatched()).To(Equal([]string{"--nope", "extra", "--force", "--", "-q"}))
	})

	t.Run("OptionReferenceNeverMatchesPositional", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		a := core.Positional("a").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"--a", "x"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(a.Value(res)).To(Equal("x"))
		g.Expect(res.Unmatched()).To(Equal([]string{"--a"}))

		_, err = core.Parse(context.Background(), set, []string{"--a"})
		g.Expect(err).To(MatchError(core.ErrMissing))
	})

	t.Run("LoneDashIsPositional", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		file := core.Positional("file").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"-"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(file.Value(res)).To(Equal("-"))
	})

	t.Run("JoinConvertsJoinedTokensOnce", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		calls := 0
		length := core.Plain(func(raw string) (int, error) {
			calls++
			return len(raw), nil
		})

		set := core.NewSet()
		n := core.OptionOf("text", length).Join(1, core.Unbounded).MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"--text", "ab", "cd"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(n.Value(res)).To(Equal(5))
		g.Expect(calls).To(Equal(1))
	})

	t.Run("CollectFoldsTokens", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		sentence := core.PlainBatch(func(raw []string) (string, error) {
			return strings.Join(raw, " ") + ".", nil
		})

		set := core.NewSet()
		msg := core.Collect(core.Positional("message"), 1, core.Unbounded, sentence).MustRegister(set)
		loud := core.Flag("loud").MustRegister(set)

		res, err := core.Parse(context.Background(), set, []string{"stand", "up", "--loud"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(msg.Value(res)).To(Equal("stand up."))
		g.Expect(loud.Value(res)).To(BeTrue())
	})

	t.Run("ConvertersSeeTheParseContext", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		type channelKey struct{}

		here := func(ctx context.Context, raw string) (string, error) {
			if raw == "here" {
				return ctx.Value(channelKey{}).(string), nil
			}

			return raw, nil
		}

		set := core.NewSet()
		channel := core.PositionalOf("channel", here).MustRegister(set)

		ctx := context.WithValue(context.Background(), channelKey{}, "general")
		res, err := core.Parse(ctx, set, []string{"here"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(channel.Value(res)).To(Equal("general"))
	})

	t.Run("ParseLineSplitsOnWhitespace", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		set := core.NewSet()
		words := core.Multiple(core.Positional("words"), 1, core.Unbounded).MustRegister(set)

		res, err := core.ParseLine(context.Background(), set, "  one\ttwo   three \n")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(words.Value(res)).To(Equal([]string{"one", "two", "three"}))
	})

	t.Run("EmptySetAcceptsAnything", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		res, err := core.Parse(context.Background(), core.NewSet(), []string{"a", "--b"})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(res.Len()).To(BeZero())
		g.Expect(res.Unmatched()).To(Equal([]string{"a", "--b"}))
	})
}

func TestLooksLikeOption(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.LooksLikeOptionForTest("--name")).To(BeTrue())
	g.Expect(core.LooksLikeOptionForTest("-n")).To(BeTrue())
	g.Expect(core.LooksLikeOptionForTest("-1")).To(BeTrue())
	g.Expect(core.LooksLikeOptionForTest("--")).To(BeTrue())
	g.Expect(core.LooksLikeOptionForTest("-")).To(BeFalse())
	g.Expect(core.LooksLikeOptionForTest("name")).To(BeFalse())
	g.Expect(core.LooksLikeOptionForTest("")).To(BeFalse())
}
