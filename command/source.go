package command

import "context"

// Source says where a line was typed. Transports attach it to the context passed
// to Dispatch so converters can resolve things like "here" or "me".
type Source struct {
	Server  string
	Channel string
	User    string
}

type sourceKey struct{}

// SourceFrom returns the Source attached to ctx, if any.
func SourceFrom(ctx context.Context) (Source, bool) {
	src, ok := ctx.Value(sourceKey{}).(Source)

	return src, ok
}

// WithSource attaches src to ctx.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}
