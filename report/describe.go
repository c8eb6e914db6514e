package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ardnew/gflag/flags"
)

// StrippedHelp is the description of a flag whose help text was removed.
// Such flags are left out of every report.
const StrippedHelp = "\001\002\003\004 (unknown) \004\003\002\001"

const (
	lineLength = 80
	indent     = "\n      "
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

// Describe renders one flag for --help: its name and description wrapped at
// 80 columns, followed by its type and the value it will have if not given on
// the command line.
func Describe(info flags.FlagInfo) string {
	var sb strings.Builder

	rest := "    -" + info.Name + " (" + info.Description + ")"
	col := 0

	for {
		nl := strings.IndexByte(rest, '\n')

		if nl < 0 && col+len(rest) < lineLength {
			sb.WriteString(rest)
			col += len(rest)

			break
		}

		if nl >= 0 && nl < lineLength-col {
			sb.WriteString(rest[:nl])
			rest = rest[nl+1:]
		} else {
			ws := lineLength - col - 1
			for ws > 0 && !isSpace(rest[ws]) {
				ws--
			}

			if ws <= 0 {
				// no place to break; the next part starts a new line
				sb.WriteString(rest)
				col = lineLength

				break
			}

			sb.WriteString(rest[:ws])
			col += ws

			for ws < len(rest) && isSpace(rest[ws]) {
				ws++
			}

			rest = rest[ws:]
		}

		if rest == "" {
			break
		}

		sb.WriteString(indent)
		col = len(indent) - 1
	}

	add := func(s string) {
		if col+1+len(s) >= lineLength {
			sb.WriteString(indent)
			col = len(indent) - 1
		} else {
			sb.WriteByte(' ')
			col++
		}

		sb.WriteString(s)
		col += len(s)
	}

	add("type: " + info.Type)

	if info.Type == flags.KindString.String() {
		add(`default: "` + info.CurrentValue + `"`)
	} else {
		add("default: " + info.CurrentValue)
	}

	sb.WriteByte('\n')

	return sb.String()
}

// dirname returns everything before the last '/' of name, or "" if there is
// none.
func dirname(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[:i]
	}

	return ""
}

func matchesAny(file string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(file, s) {
			return true
		}
	}

	return false
}

// Usage writes the help report for infos, which must be sorted by file and
// then by name. Only flags declared in a file containing one of substrings
// are listed; all flags are listed if substrings is empty.
func Usage(w io.Writer, prog, usage string, infos []flags.FlagInfo, substrings ...string) {
	fmt.Fprintf(w, "%s: %s\n", filepath.Base(prog), usage)

	var (
		last  string
		first = true
		found bool
	)

	for _, info := range infos {
		if len(substrings) > 0 && !matchesAny(info.Filename, substrings) {
			continue
		}

		if info.Description == StrippedHelp {
			continue
		}

		found = true

		if info.Filename != last {
			if dirname(info.Filename) != dirname(last) {
				if !first {
					fmt.Fprint(w, "\n\n")
				}

				first = false
			}

			fmt.Fprintf(w, "\n  Flags from %s:\n", info.Filename)
			last = info.Filename
		}

		fmt.Fprint(w, Describe(info))
	}

	if !found && len(substrings) > 0 {
		fmt.Fprint(w, "\n  No modules matched: use -help\n")
	}
}

var xmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;")

// XML writes the --helpxml document for infos.
func XML(w io.Writer, prog, usage string, infos []flags.FlagInfo) {
	fmt.Fprint(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(w, "<AllFlags>\n")
	fmt.Fprintf(w, "<program>%s</program>\n", xmlText.Replace(filepath.Base(prog)))
	fmt.Fprintf(w, "<usage>%s</usage>\n", xmlText.Replace(usage))

	for _, info := range infos {
		if info.Description == StrippedHelp {
			continue
		}

		fmt.Fprintf(w,
			"<flag><file>%s</file><name>%s</name><meaning>%s</meaning>"+
				"<default>%s</default><type>%s</type></flag>\n",
			xmlText.Replace(info.Filename),
			xmlText.Replace(info.Name),
			xmlText.Replace(info.Description),
			xmlText.Replace(info.DefaultValue),
			xmlText.Replace(info.Type),
		)
	}

	fmt.Fprint(w, "</AllFlags>\n")
}

// Version writes the --version report.
func Version(w io.Writer, prog, version string) {
	fmt.Fprintln(w, filepath.Base(prog))

	if version = strings.TrimSpace(version); version != "" {
		fmt.Fprintf(w, "version %s\n", version)
	}
}
