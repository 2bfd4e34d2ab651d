package repository

import (
	"context"
	"fmt"

	"github.com/arrdeck/arrdeck/internal/arr"
)

// unknownCategory labels failures that did not originate from a client
// fault, such as a cancelled context.
const unknownCategory = "UnknownFault"

// Result is the single outcome emitted by a repository call: either a
// decoded payload or a human-readable failure message.
type Result[T any] struct {
	Value   T
	Failure string
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Failure == ""
}

func succeed[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Failure: Describe(err)}
}

// Describe builds the "category: message" text surfaced to screens.
func Describe(err error) string {
	if f, ok := arr.AsFault(err); ok {
		return fmt.Sprintf("%s: %s", f.Category, f.Message)
	}
	return fmt.Sprintf("%s: %s", unknownCategory, err.Error())
}

// run executes fn in its own goroutine and delivers exactly one result
// on the returned channel. The channel is buffered so the producer
// never blocks on an abandoned caller.
func run[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, err := fn(ctx)
		if err != nil {
			out <- fail[T](err)
			return
		}
		out <- succeed(v)
	}()
	return out
}
