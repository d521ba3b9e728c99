// Package chatargs declares the arguments of chat-style commands and parses
// whitespace-split input lines against them.
//
// A command declares its parameters once, into a Set:
//
//	set := chatargs.NewSet()
//	verbose := chatargs.Flag("verbose").Short("v").MustRegister(set)
//	count := chatargs.OptionOf("count", convert.Int).Default(1).MustRegister(set)
//	tags := chatargs.Multiple(chatargs.Option("tags"), 1, chatargs.Unbounded).Optional().MustRegister(set)
//	target := chatargs.Positional("target").MustRegister(set)
//
// and every invocation parses its tokens against that Set:
//
//	res, err := chatargs.ParseLine(ctx, set, "bob --tags a b -v")
//	// target.Value(res) == "bob", tags.Value(res) == []string{"a", "b"},
//	// verbose.Value(res) == true, count.Value(res) == 1
//
// Failures are *ParseError values of four kinds (Empty, Invalid, Insufficient,
// Missing), each unwrapping to the matching ErrX sentinel.
package chatargs
