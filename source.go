package shape

import (
	"bytes"
	"context"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/shapelib/shape/i18n"
)

// Source abstracts over polymorphic input sources. Decode materializes the
// whole document as an any value for the parse walk.
type Source interface {
	Decode() (any, error)
	Name() string
}

// readerSource is implemented by sources backed by an io.Reader so ParseFrom
// can enforce size caps.
type readerSource interface {
	Source
	reader() io.Reader
	with(r io.Reader) Source
}

type jsonSource struct{ r io.Reader }

func (s jsonSource) Decode() (any, error) {
	dec := j.NewDecoder(s.r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s jsonSource) Name() string            { return "json" }
func (s jsonSource) reader() io.Reader       { return s.r }
func (s jsonSource) with(r io.Reader) Source { return jsonSource{r: r} }

// JSONReader wraps an io.Reader as a JSON Source. Numbers surface as
// json.Number to avoid float64 precision loss.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

type yamlSource struct{ r io.Reader }

func (s yamlSource) Decode() (any, error) {
	var v any
	if err := yaml.NewDecoder(s.r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s yamlSource) Name() string            { return "yaml" }
func (s yamlSource) reader() io.Reader       { return s.r }
func (s yamlSource) with(r io.Reader) Source { return yamlSource{r: r} }

// YAMLReader wraps an io.Reader as a YAML Source.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// ParseFrom is the document-level entry point. It decodes the Source into an
// any value and delegates validation to the Schema. When MaxBytes is set it
// enforces the size cap up front for reader-backed sources.
func ParseFrom(ctx context.Context, s *Schema, src Source, opts ...ParseOpt) (any, error) {
	if s == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	if opt.MaxBytes > 0 {
		capped, err := capSource(src, opt.MaxBytes)
		if err != nil {
			return nil, err
		}
		src = capped
	}
	v, err := src.Decode()
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return s.Parse(ctx, v)
}

func capSource(src Source, maxBytes int64) (Source, error) {
	rs, ok := src.(readerSource)
	if !ok {
		return src, nil
	}
	data, err := io.ReadAll(io.LimitReader(rs.reader(), maxBytes+1))
	if err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	if int64(len(data)) > maxBytes {
		return nil, Issues{{Path: "/", Code: CodeTruncated, Message: i18n.T(CodeTruncated, nil), Hint: "max bytes exceeded"}}
	}
	return rs.with(bytes.NewReader(data)), nil
}
