// BYZRA ⸻ cmd/copydetails/args.go
// rewrites legacy switches into cobra flags, drops unknown ones

package main

import (
	"runtime"
	"strings"

	"copydetails/internal/util"
)

// long flags and whether they take a value
var longFlags = map[string]bool{
	"copy-only-dates": false,
	"config":          true,
	"profile":         true,
	"backend":         true,
	"verify":          false,
	"verbose":         false,
	"help":            false,
}

var shortFlags = map[string]bool{
	"v": true,
	"h": true,
}

func isSwitch(arg string) bool {
	if len(arg) < 2 {
		return false
	}
	return arg[0] == '-' || (runtime.GOOS == "windows" && arg[0] == '/')
}

// normalizeArgs accepts -copy_only_dates / -copy-only-dates in any case and
// single-dash long flags, and reports every other switch as unknown.
func normalizeArgs(args []string, log *util.Logger) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if !isSwitch(arg) {
			out = append(out, arg)
			continue
		}

		body := arg[1:]
		double := strings.HasPrefix(body, "-")
		if double {
			body = body[1:]
		}
		name, value, hasValue := strings.Cut(body, "=")
		suffix := ""
		if hasValue {
			suffix = "=" + value
		}

		switch lower := strings.ToLower(name); {
		case lower == "copy_only_dates" || lower == "copy-only-dates":
			out = append(out, "--copy-only-dates"+suffix)

		case !double && shortFlags[name]:
			out = append(out, "-"+name)

		default:
			takesValue, known := longFlags[name]
			if !known || (!double && len(name) == 1) {
				log.Warningf("Unknown switch: %s", arg)
				continue
			}
			out = append(out, "--"+name+suffix)
			if takesValue && !hasValue && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		}
	}

	return out
}
