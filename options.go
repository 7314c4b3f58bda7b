package confroute

import (
	"github.com/confroute/confroute/codec"
	"github.com/confroute/confroute/engine"
	"github.com/confroute/confroute/journal"
)

type options struct {
	codec   codec.Codec
	policy  engine.ConflictPolicy
	prune   bool
	exec    Executor
	journal *journal.Journal
}

// Option configures a facade call.
type Option func(*options)

// WithCodec forces a serialization format instead of inferring one from the
// file extension.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithConflictPolicy sets the mutation conflict policy for Set calls.
// The default is engine.Strict.
func WithConflictPolicy(p engine.ConflictPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithPrune makes Delete remove mapping ancestors left empty by the removal.
func WithPrune() Option {
	return func(o *options) { o.prune = true }
}

// WithExecutor offloads CPU-bound parse/serialize work to exec.
// The default runs inline on the calling goroutine.
func WithExecutor(exec Executor) Option {
	return func(o *options) { o.exec = exec }
}

// WithJournal records every persisted write to j. The document is persisted
// even when recording fails; the recording error is still reported.
func WithJournal(j *journal.Journal) Option {
	return func(o *options) { o.journal = j }
}

func buildOptions(opts []Option) options {
	o := options{exec: Inline}
	for _, opt := range opts {
		opt(&o)
	}
	if o.exec == nil {
		o.exec = Inline
	}
	return o
}
