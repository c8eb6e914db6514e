package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/gflag/flags"
)

// Format identifies the encoding of a schema document.
type Format int

// Supported formats.
const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, ErrFormat.With(slog.String("path", path), slog.String("ext", ext))
	}
}

// Flag declares one flag.
type Flag struct {
	// Default is a scalar of any type; it is converted to text and parsed
	// according to Type. A missing default is the zero value of Type.
	Default  any    `json:"default,omitempty"  yaml:"default,omitempty"  toml:"default,omitempty"`
	Name     string `json:"name"               yaml:"name"               toml:"name"`
	Type     string `json:"type"               yaml:"type"               toml:"type"`
	Help     string `json:"help,omitempty"     yaml:"help,omitempty"     toml:"help,omitempty"`
	File     string `json:"file,omitempty"     yaml:"file,omitempty"     toml:"file,omitempty"`
	Validate string `json:"validate,omitempty" yaml:"validate,omitempty" toml:"validate,omitempty"`
	Env      string `json:"env,omitempty"      yaml:"env,omitempty"      toml:"env,omitempty"`
}

// Schema declares the flags of a program.
type Schema struct {
	Program string `json:"program,omitempty" yaml:"program,omitempty" toml:"program,omitempty"`
	Usage   string `json:"usage,omitempty"   yaml:"usage,omitempty"   toml:"usage,omitempty"`
	Flags   []Flag `json:"flags"             yaml:"flags"             toml:"flags"`

	// path is the file the schema was loaded from, used as the declaring
	// file of flags that do not name one.
	path string
}

// Parse decodes a schema document. Unknown keys are errors.
func Parse(data []byte, format Format) (*Schema, error) {
	var s Schema

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, &s,
			yaml.DisallowUnknownField()); err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("format", "yaml"))
		}

	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("format", "toml"))
		}

		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, ErrDecode.
				Wrap(fmt.Errorf("unknown key %q", keys[0].String())).
				With(slog.String("format", "toml"))
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&s); err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("format", "json"))
		}

	default:
		return nil, ErrFormat.With(slog.String("format", format.String()))
	}

	return &s, nil
}

// Load reads and decodes the schema file at path, choosing the format by
// extension.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	s.path = path

	return s, nil
}

// Path returns the file s was loaded from, if any.
func (s *Schema) Path() string { return s.path }

// Declare defines every flag of s in reg and installs their validators.
//
// The default of a flag naming an environment variable is taken from that
// variable when it is set. Declaration stops at the first error.
func (s *Schema) Declare(reg *flags.Registry, opts ...Option) error {
	cfg := apply(defaultConfig(), opts...)

	for _, f := range s.Flags {
		if err := s.declare(reg, cfg, f); err != nil {
			return err
		}
	}

	return nil
}

func (s *Schema) declare(reg *flags.Registry, cfg config, f Flag) error {
	kind, ok := flags.ParseKind(f.Type)
	if !ok {
		return ErrUnknownType.With(
			slog.String("flag", f.Name),
			slog.String("type", f.Type),
		)
	}

	def, err := defaultText(kind, f.Default)
	if err != nil {
		return err.With(slog.String("flag", f.Name))
	}

	if f.Env != "" {
		if v, ok := cfg.getenv(f.Env); ok {
			def = v

			cfg.logger.Debug("schema default from environment",
				slog.String("flag", f.Name),
				slog.String("env", f.Env),
			)
		}
	}

	file := cmp.Or(f.File, s.path, "UNKNOWN")

	if _, err := reg.DefineFrom(kind, f.Name, def, f.Help, file); err != nil {
		return ErrDeclare.Wrap(err).With(slog.String("flag", f.Name))
	}

	if f.Validate == "" {
		return nil
	}

	v, err := compile(f.Validate, kind, cfg.logger)
	if err != nil {
		return err.With(slog.String("flag", f.Name))
	}

	if !flags.RegisterValueValidator(reg, f.Name, kind, v) {
		return ErrDeclare.With(
			slog.String("flag", f.Name),
			slog.String("validate", f.Validate),
		)
	}

	return nil
}

// defaultText renders a decoded default as text for kind.
func defaultText(kind flags.Kind, v any) (string, *flags.Error) {
	switch t := v.(type) {
	case nil:
		return flags.NewValue(kind).String(), nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		if kind != flags.KindDouble && t == math.Trunc(t) &&
			math.Abs(t) < 1<<53 {
			return strconv.FormatInt(int64(t), 10), nil
		}

		return strconv.FormatFloat(t, 'g', -1, 64), nil
	}

	return "", ErrDefault.With(slog.Any("default", v))
}
