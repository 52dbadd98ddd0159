// Package render provides page-level access to report PDFs: layout-aware
// text, plain text from an alternate renderer, and rasterized page images.
package render

import "context"

// PageRenderer exposes per-page views of one document.
//
// PageText is the primary, layout-aware rendering. It preserves column and
// table alignment but can corrupt multi-column reading order. PlainPageText
// is an alternate rendering with no table structuring at all, used when the
// primary rendering mangles dotted or columnar TOC layouts. PageImage
// rasterizes a single page for vision extraction.
type PageRenderer interface {
	PageCount() int
	PageText(ctx context.Context, pageNum int) (string, error)
	PlainPageText(ctx context.Context, pageNum int) (string, error)
	PageImage(ctx context.Context, pageNum int) ([]byte, error)
}
