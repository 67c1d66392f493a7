package language

import (
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
)

// Applied is one language argument as given on the command line. Values
// holds one entry per occurrence for value arguments.
type Applied struct {
	Argument *Argument
	Values   []string
}

// ParseArgs maps the arguments given after "--" to the language's
// arguments, in order of first appearance. A non-repeatable argument given
// twice keeps its last value.
func (l *Language) ParseArgs(args []string) ([]Applied, error) {
	var applied []Applied
	index := make(map[*Argument]int)

	for i := 0; i < len(args); i++ {
		flag, inline, hasInline := strings.Cut(args[i], "=")
		arg := l.argument(flag)
		if arg == nil {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown %s argument %s", l.Name, args[i]).
				WithDetail("argument", args[i]).
				WithDetail("language", l.Name)
		}

		var value string
		switch {
		case !arg.Value && hasInline:
			return nil, errors.Newf(errors.ErrInvalidInput, "%s argument %s takes no value", l.Name, flag)
		case arg.Value && hasInline:
			value = inline
		case arg.Value:
			if i+1 >= len(args) {
				return nil, errors.Newf(errors.ErrInvalidInput, "%s argument %s requires a value", l.Name, flag).
					WithDetail("argument", flag)
			}
			i++
			value = args[i]
		}

		pos, seen := index[arg]
		if !seen {
			index[arg] = len(applied)
			applied = append(applied, Applied{Argument: arg})
			pos = len(applied) - 1
		}
		if !arg.Value {
			continue
		}
		if arg.Repeat {
			applied[pos].Values = append(applied[pos].Values, value)
		} else {
			applied[pos].Values = []string{value}
		}
	}
	return applied, nil
}

func (l *Language) argument(flag string) *Argument {
	for i := range l.Arguments {
		if l.Arguments[i].Matches(flag) {
			return &l.Arguments[i]
		}
	}
	return nil
}
