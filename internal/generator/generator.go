// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/autogen/batchautogen/internal/batch"
	"github.com/autogen/batchautogen/pkg/cueutil"

	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/exp/slices"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// SolutionCUEFile is the spec rendered as CUE.
	SolutionCUEFile = "solution.cue"
	// SolutionJSONFile is the spec rendered as indented JSON.
	SolutionJSONFile = "solution.json"
	// SupportDir is the package directory holding the shared support files.
	SupportDir = "common"
	// MaxSpecSize bounds a spec rendered as JSON.
	MaxSpecSize int64 = 1 << 20

	generatedHeader = "// Code generated by batchautogen. DO NOT EDIT.\n\n"
)

// ErrInvalidSpec is returned when a spec does not match #Spec.
var ErrInvalidSpec = errors.New("invalid spec")

//go:embed schema.cue
var specSchema []byte

//go:embed support
var supportFiles embed.FS

type (
	// Generator renders solution packages. The zero value is not usable;
	// call New.
	Generator struct {
		support fs.FS
	}

	// Option configures a Generator.
	Option func(*Generator)
)

var _ batch.Generator = (*Generator)(nil)

// WithSupportFiles replaces the embedded shared support files. Every regular
// file in fsys is copied under SupportDir when the strategy includes them.
func WithSupportFiles(fsys fs.FS) Option {
	return func(g *Generator) {
		g.support = fsys
	}
}

// New creates a Generator backed by the embedded support files.
func New(opts ...Option) *Generator {
	sub, err := fs.Sub(supportFiles, "support")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	g := &Generator{support: sub}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates spec and renders its package. A nil spec renders the
// same package as an empty one. Files are sorted by path so the same spec
// always yields the same package.
func (g *Generator) Generate(ctx context.Context, spec *structpb.Struct, strategy batch.SharedSupportFilesStrategy) (batch.GeneratedPackage, error) {
	if err := ctx.Err(); err != nil {
		return batch.GeneratedPackage{}, err
	}
	if spec == nil {
		spec = &structpb.Struct{}
	}
	if err := strategy.Validate(); err != nil {
		return batch.GeneratedPackage{}, err
	}

	doc, err := renderJSON(spec)
	if err != nil {
		return batch.GeneratedPackage{}, err
	}

	if _, err := cueutil.ParseAndDecode[map[string]any](specSchema, doc, "#Spec",
		cueutil.WithFilename("spec"),
		cueutil.WithMaxFileSize(MaxSpecSize),
	); err != nil {
		return batch.GeneratedPackage{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	src, err := cueutil.Format(cuecontext.New().CompileBytes(doc))
	if err != nil {
		return batch.GeneratedPackage{}, fmt.Errorf("render %s: %w", SolutionCUEFile, err)
	}

	files := []batch.File{
		{Path: SolutionCUEFile, Content: append([]byte(generatedHeader), src...)},
		{Path: SolutionJSONFile, Content: doc},
	}

	if strategy.Included() {
		support, err := g.supportFiles()
		if err != nil {
			return batch.GeneratedPackage{}, err
		}
		files = append(files, support...)
	}

	slices.SortFunc(files, func(a, b batch.File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return batch.GeneratedPackage{Files: files}, nil
}

// renderJSON writes spec as indented JSON with sorted keys and no HTML escaping.
func renderJSON(spec *structpb.Struct) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spec.AsMap()); err != nil {
		return nil, fmt.Errorf("render %s: %w", SolutionJSONFile, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) supportFiles() ([]batch.File, error) {
	var files []batch.File
	err := fs.WalkDir(g.support, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		content, err := fs.ReadFile(g.support, p)
		if err != nil {
			return err
		}
		files = append(files, batch.File{Path: path.Join(SupportDir, p), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read shared support files: %w", err)
	}
	return files, nil
}
