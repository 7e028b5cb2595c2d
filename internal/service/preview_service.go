package service

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strconv"

	"pdf-fusion/internal/domain"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

const (
	defaultPreviewWidth = 200
	minPreviewWidth     = 16
	baseDPI             = 72.0
)

// PreviewService renders page thumbnails and reads document metadata with
// MuPDF. It never modifies the source.
type PreviewService struct {
	maxWidth int
	logger   domain.Logger
}

// NewPreviewService creates a preview service limited to maxWidth pixels
func NewPreviewService(maxWidth int, logger domain.Logger) *PreviewService {
	if maxWidth < minPreviewWidth {
		maxWidth = defaultPreviewWidth
	}
	return &PreviewService{
		maxWidth: maxWidth,
		logger:   logger,
	}
}

// Info reads page count, title and author of the document at path
func (s *PreviewService) Info(ctx context.Context, path string) (*domain.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, &domain.DocumentReadError{Path: path, Err: err}
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, &domain.DocumentReadError{Path: path, Err: err}
	}
	defer doc.Close()

	meta := doc.Metadata()
	return &domain.DocumentInfo{
		Path:      path,
		PageCount: doc.NumPage(),
		Title:     meta["title"],
		Author:    meta["author"],
		FileSize:  stat.Size(),
	}, nil
}

// RenderPNG renders one page of path as a PNG thumbnail opts.Width pixels wide
func (s *PreviewService) RenderPNG(ctx context.Context, path string, opts domain.PreviewOptions, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	width := s.clampWidth(opts.Width)

	doc, err := fitz.New(path)
	if err != nil {
		return &domain.DocumentReadError{Path: path, Err: err}
	}
	defer doc.Close()

	if opts.Page < 1 || opts.Page > doc.NumPage() {
		return &domain.InvalidParameterError{
			Param:   "page",
			Value:   strconv.Itoa(opts.Page),
			Message: fmt.Sprintf("document has %d pages", doc.NumPage()),
		}
	}

	bounds, err := doc.Bound(opts.Page - 1)
	if err != nil {
		return &domain.DocumentReadError{Path: path, Err: err}
	}

	img, err := doc.ImageDPI(opts.Page-1, renderDPI(bounds.Dx(), width))
	if err != nil {
		return &domain.DocumentReadError{Path: path, Err: err}
	}

	s.logger.Debug("Page rendered", "path", path, "page", opts.Page, "width", width)
	return png.Encode(w, ScaleToWidth(img, width))
}

func (s *PreviewService) clampWidth(width int) int {
	switch {
	case width <= 0:
		width = defaultPreviewWidth
	case width < minPreviewWidth:
		width = minPreviewWidth
	}
	if width > s.maxWidth {
		width = s.maxWidth
	}
	return width
}

// renderDPI picks the resolution that renders a page of pointWidth points at
// least targetWidth pixels wide.
func renderDPI(pointWidth, targetWidth int) float64 {
	if pointWidth <= 0 {
		return baseDPI
	}
	dpi := baseDPI * float64(targetWidth) / float64(pointWidth)
	if dpi < 1 {
		dpi = 1
	}
	return dpi
}

// ScaleToWidth downsamples src to width pixels, keeping the aspect ratio.
// Images already narrower than width are returned unchanged.
func ScaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if width <= 0 || b.Dx() <= width {
		return src
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
