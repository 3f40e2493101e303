package pdfform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"
)

var ErrNoDocuments = errors.New("no documents to merge")

const renderWorkers = 4

func init() {
	// Keep pdfcpu from creating a config directory under $HOME.
	api.DisableConfigDir()
}

func pdfcpuConfig() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

// Bundle renders every form concurrently and merges the results, in input
// order, into a single PDF.
func (r *Renderer) Bundle(ctx context.Context, forms []Form) ([]byte, error) {
	if len(forms) == 0 {
		return nil, ErrNoDocuments
	}

	docs := make([][]byte, len(forms))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(renderWorkers)
	for i, f := range forms {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.Render(f)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return Merge(docs)
}

// Merge concatenates PDF documents.
func Merge(docs [][]byte) ([]byte, error) {
	switch len(docs) {
	case 0:
		return nil, ErrNoDocuments
	case 1:
		return docs[0], nil
	}

	rsc := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		rsc[i] = bytes.NewReader(d)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(rsc, &buf, false, pdfcpuConfig()); err != nil {
		return nil, fmt.Errorf("merge %d documents: %w", len(docs), err)
	}
	return buf.Bytes(), nil
}

// PageCount returns the number of pages of a PDF document.
func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), pdfcpuConfig())
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
