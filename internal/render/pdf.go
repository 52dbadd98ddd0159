package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFRenderer implements PageRenderer for a single PDF on disk.
// Layout-aware text and rasterization shell out to poppler-utils
// (pdftotext/pdftoppm); plain text uses a pure-Go extraction that
// applies no table structuring.
type PDFRenderer struct {
	path      string
	pageCount int
	imageDir  string // cache for rasterized pages, optional
}

// NewPDFRenderer validates the PDF and reads its page count.
func NewPDFRenderer(path string) (*PDFRenderer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", path)
	}

	return &PDFRenderer{path: path, pageCount: pageCount}, nil
}

// SetImageCacheDir enables caching of rasterized pages under dir.
func (r *PDFRenderer) SetImageCacheDir(dir string) {
	r.imageDir = dir
}

// PageCount returns the number of pages in the document.
func (r *PDFRenderer) PageCount() int {
	return r.pageCount
}

// PageText renders a page with layout preserved using pdftotext.
func (r *PDFRenderer) PageText(ctx context.Context, pageNum int) (string, error) {
	if pageNum < 1 || pageNum > r.pageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pageCount)
	}

	pageStr := strconv.Itoa(pageNum)
	// -layout: preserve the physical layout; "-" writes to stdout.
	cmd := exec.CommandContext(ctx, "pdftotext",
		"-layout",
		"-f", pageStr,
		"-l", pageStr,
		r.path,
		"-",
	)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNum, err)
	}
	return string(output), nil
}

// PlainPageText renders a page without any table structuring.
func (r *PDFRenderer) PlainPageText(ctx context.Context, pageNum int) (string, error) {
	if pageNum < 1 || pageNum > r.pageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pageCount)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, reader, err := pdflib.Open(r.path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF for plain text: %w", err)
	}
	defer f.Close()

	if pageNum > reader.NumPage() {
		return "", fmt.Errorf("page %d beyond alternate renderer page count %d", pageNum, reader.NumPage())
	}

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is empty", pageNum)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("plain text extraction failed for page %d: %w", pageNum, err)
	}
	return text, nil
}

// PageImage rasterizes a single page to PNG using pdftoppm.
func (r *PDFRenderer) PageImage(ctx context.Context, pageNum int) ([]byte, error) {
	if pageNum < 1 || pageNum > r.pageCount {
		return nil, fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pageCount)
	}

	// Serve from cache when available.
	if r.imageDir != "" {
		cached := filepath.Join(r.imageDir, fmt.Sprintf("page_%04d.png", pageNum))
		if data, err := os.ReadFile(cached); err == nil {
			return data, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "strata-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")
	pageStr := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", "300",
		"-singlefile",
		r.path,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}

	if r.imageDir != "" {
		cached := filepath.Join(r.imageDir, fmt.Sprintf("page_%04d.png", pageNum))
		if err := os.MkdirAll(r.imageDir, 0o755); err == nil {
			_ = os.WriteFile(cached, data, 0o644)
		}
	}

	return data, nil
}
