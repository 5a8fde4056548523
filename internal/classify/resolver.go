package classify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Resolution is the outcome of asking a resolver to categorize a name:
// either an undo request or a category (the empty string is a legal
// category).
type Resolution struct {
	Undo     bool
	Category string
}

// Resolver supplies a category for a name the store has not seen. The call
// blocks until an answer is available; interactive implementations wait on
// user input. Known is the current set of category names, for context in a
// prompt.
type Resolver interface {
	Resolve(ctx context.Context, name string, known []string) (Resolution, error)
}

// undoWord is what a user types to take back the previous classification.
const undoWord = "back"

// PromptResolver asks on a terminal. Reader and writer are injected so
// tests can script a session.
type PromptResolver struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPromptResolver(in io.Reader, out io.Writer) *PromptResolver {
	return &PromptResolver{in: bufio.NewScanner(in), out: out}
}

func (p *PromptResolver) Resolve(ctx context.Context, name string, known []string) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}

	fmt.Fprintf(p.out, "\nExpense: %s\n", name)
	if len(known) == 0 {
		fmt.Fprintln(p.out, "Existing categories: none")
	} else {
		fmt.Fprintf(p.out, "Existing categories: %s\n", strings.Join(known, ", "))
	}
	fmt.Fprintf(p.out, "Enter an existing category, a new one, or '%s' to undo the last entry: ", undoWord)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return Resolution{}, fmt.Errorf("read answer: %w", err)
		}
		return Resolution{}, io.EOF
	}
	answer := strings.TrimSpace(p.in.Text())
	if strings.EqualFold(answer, undoWord) {
		return Resolution{Undo: true}, nil
	}
	return Resolution{Category: answer}, nil
}
