package cmd

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/gflag/flags"
	"github.com/ardnew/gflag/log"
	"github.com/ardnew/gflag/pkg"
	"github.com/ardnew/gflag/report"
	"github.com/ardnew/gflag/schema"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// streams returns the output streams and exit function of the kong
// application in ctx, falling back to the process's own.
func streams(ctx context.Context) (stdout, stderr io.Writer, exit func(int)) {
	stdout, stderr, exit = os.Stdout, os.Stderr, os.Exit

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil {
		if ktx.Stdout != nil {
			stdout = ktx.Stdout
		}

		if ktx.Stderr != nil {
			stderr = ktx.Stderr
		}

		if ktx.Exit != nil {
			exit = ktx.Exit
		}
	}

	return stdout, stderr, exit
}

// Declaration selects the schema whose flags a subcommand declares.
type Declaration struct {
	Schema  string `help:"Schema declaring the flags (.yaml, .yml, .toml, .json)." required:"" short:"s" type:"existingfile"`
	Program string `help:"Program name matched against flag file patterns."                    short:"p"`
}

// session is a registry populated from a schema.
type session struct {
	reg      *flags.Registry
	reporter *report.Reporter
	schema   *schema.Schema
	program  string
}

// open loads the schema and declares its flags, along with the reporting
// flags, in a new registry. The program name is, in order of preference, the
// --program flag, the schema's program, or the name of this command.
func (d Declaration) open(ctx context.Context) (*session, error) {
	s, err := schema.Load(d.Schema)
	if err != nil {
		return nil, err
	}

	stdout, stderr, exit := streams(ctx)
	logger := log.Default()
	program := cmp.Or(d.Program, s.Program, pkg.Name)

	reg := flags.NewRegistry(
		flags.WithLogger(logger),
		flags.WithProgramName(program),
		flags.WithStderr(stderr),
		flags.WithExit(exit),
	)

	rep := report.Install(reg,
		report.WithStdout(stdout),
		report.WithStderr(stderr),
		report.WithUsage(s.Usage),
	)

	if err := s.Declare(reg, schema.WithLogger(logger)); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "schema declared",
		slog.String("schema", d.Schema),
		slog.String("program", program),
		slog.Int("flags", len(s.Flags)),
	)

	return &session{reg: reg, reporter: rep, schema: s, program: program}, nil
}

// declared returns the current state of the flags the schema declares, in
// registry order.
func (s *session) declared() []flags.FlagInfo {
	names := make(map[string]bool, len(s.schema.Flags))
	for _, f := range s.schema.Flags {
		names[f.Name] = true
	}

	var infos []flags.FlagInfo

	for _, info := range s.reg.All() {
		if names[info.Name] {
			infos = append(infos, info)
		}
	}

	return infos
}

// source is the content of one named input.
type source struct {
	name string
	data []byte
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSources reads the named files in order, skipping any file already read
// under another name. All occurrences of "-" are replaced with a single read
// of stdin placed last.
func readSources(names []string, stdin io.Reader) ([]source, error) {
	var (
		srcs     = make([]source, 0, len(names))
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		data, ok, err := readUniqueFile(name, seen)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		if ok {
			srcs = append(srcs, source{name: name, data: data})
		}
	}

	if hasStdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		srcs = append(srcs, source{name: "<stdin>", data: data})
	}

	return srcs, nil
}

// readUniqueFile reads the file at path unless a file with the same device
// and inode was already read. It resolves symlinks before comparing.
func readUniqueFile(path string, seen map[fileKey]struct{}) ([]byte, bool, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
