// Package flagx contains helpers for pre-parsing a few command-line flags
// before the application runs its full flag.Parse.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made up of the wanted flags and
// their values. Both the "-f value" and "-f=value" (or "--flag=value")
// forms are recognized; everything else, including positional arguments,
// is dropped. The result is never nil.
func FilterArgs(args []string, wanted []string) []string {
	keep := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		keep[name] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		// combined form: the value travels inside the same argument
		if name, _, found := strings.Cut(arg, "="); found {
			if keep[name] {
				out = append(out, arg)
			}
			continue
		}

		if !keep[arg] {
			continue
		}
		out = append(out, arg)

		// a following token that does not start a new flag is this flag's value
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// JsonConfigFlags returns the config file path passed via -c or -config,
// or "" when neither flag is present. Only these two flags are parsed, so
// the call is safe before any other package registers its own flags.
func JsonConfigFlags() string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (shorthand)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config"}))

	return path
}
