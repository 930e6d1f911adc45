package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"sync"

	"exam-worksheet/internal/domain"
	"exam-worksheet/internal/logger"
	"exam-worksheet/internal/util"

	"github.com/fogleman/gg"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const pointsPerInch = 72.0

// pdfcpu otherwise installs a config directory under the user's home on first use
var disableConfigDir sync.Once

// RendererOptions configures rasterisation
type RendererOptions struct {
	// DPI of the rasterised pages
	DPI float64
	// FontPath is a TrueType font used for headings and footers.
	// Without one the built-in face is used, which has no Hangul glyphs.
	FontPath string
	FontSize float64
}

// DefaultRendererOptions returns 150 DPI with the built-in font
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{DPI: 150, FontSize: 11}
}

// Renderer turns a Document into PDF bytes. Each page is rasterised with gg and
// the pages are then assembled into a PDF by pdfcpu.
type Renderer struct {
	opts  RendererOptions
	scale float64
}

// NewRenderer creates a Renderer
func NewRenderer(opts RendererOptions) *Renderer {
	defaults := DefaultRendererOptions()
	if opts.DPI <= 0 {
		opts.DPI = defaults.DPI
	}
	if opts.FontSize <= 0 {
		opts.FontSize = defaults.FontSize
	}
	if opts.FontPath == "" {
		logger.Get().Warn("No PDF font configured, Korean titles and headings will not render; set pdf.font_path to a Hangul TrueType font")
	} else {
		logger.Get().Info("Using PDF font", zap.String("path", opts.FontPath), zap.Float64("size", opts.FontSize))
	}
	disableConfigDir.Do(api.DisableConfigDir)
	return &Renderer{opts: opts, scale: opts.DPI / pointsPerInch}
}

// UsesBuiltinFont reports whether the renderer falls back to the built-in face
func (r *Renderer) UsesBuiltinFont() bool {
	return r.opts.FontPath == ""
}

// Render rasterises and assembles doc. Any failure is reported as a RENDER_ERROR.
func (r *Renderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, domain.NewRenderError(fmt.Errorf("document is nil"))
	}

	face, err := r.loadFace()
	if err != nil {
		return nil, domain.NewRenderError(err)
	}

	pages, err := r.paginate(ctx, doc, face)
	if err != nil {
		return nil, domain.NewRenderError(err)
	}

	readers := make([]io.Reader, 0, len(pages))
	for _, page := range pages {
		var buf bytes.Buffer
		if err := page.EncodePNG(&buf); err != nil {
			return nil, domain.NewRenderError(fmt.Errorf("failed to encode page: %w", err))
		}
		readers = append(readers, &buf)
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, readers, pdfcpu.DefaultImportConfig(), model.NewDefaultConfiguration()); err != nil {
		return nil, domain.NewRenderError(fmt.Errorf("failed to assemble pdf: %w", err))
	}
	return out.Bytes(), nil
}

func (r *Renderer) loadFace() (font.Face, error) {
	if r.opts.FontPath == "" {
		return nil, nil
	}
	face, err := gg.LoadFontFace(r.opts.FontPath, r.opts.FontSize*r.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", r.opts.FontPath, err)
	}
	return face, nil
}

// pageWriter tracks the page being filled
type pageWriter struct {
	r       *Renderer
	doc     *Document
	face    font.Face
	pages   []*gg.Context
	current *gg.Context
	y       float64
	used    bool
}

func (w *pageWriter) px(points float64) float64 {
	return points * w.r.scale
}

func (w *pageWriter) newPage() {
	dc := gg.NewContext(int(math.Round(w.px(w.doc.PageSize.Width))), int(math.Round(w.px(w.doc.PageSize.Height))))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	if w.face != nil {
		dc.SetFontFace(w.face)
	}
	w.pages = append(w.pages, dc)
	w.current = dc
	w.y = w.px(w.doc.Margins.Top)
	w.used = false
}

func (w *pageWriter) bottom() float64 {
	return w.px(w.doc.PageSize.Height - w.doc.Margins.Bottom)
}

func (w *pageWriter) ensure(height float64) {
	if w.used && w.y+height > w.bottom() {
		w.newPage()
	}
}

func (r *Renderer) paginate(ctx context.Context, doc *Document, face font.Face) ([]*gg.Context, error) {
	w := &pageWriter{r: r, doc: doc, face: face}
	w.newPage()

	left := w.px(doc.Margins.Left)
	gap := w.px(DefaultColumnGap)

	for _, section := range doc.Sections {
		if section.PageBreakBefore && w.used {
			w.newPage()
		}
		if section.Heading != "" {
			lineHeight := w.current.FontHeight() * 1.8
			w.ensure(lineHeight)
			w.current.DrawStringAnchored(section.Heading, left, w.y, 0, 1)
			w.y += lineHeight
			w.used = true
		}

		for _, row := range section.Rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			cells := []*Cell{row.Left, row.Right}
			scaled := make([]image.Image, len(cells))
			rowHeight := 0.0
			for i, cell := range cells {
				if cell == nil {
					continue
				}
				img, err := r.decodeAndScale(cell, w.bottom()-w.px(doc.Margins.Top))
				if err != nil {
					return nil, err
				}
				scaled[i] = img
				rowHeight = math.Max(rowHeight, float64(img.Bounds().Dy()))
			}

			w.ensure(rowHeight)
			for i, img := range scaled {
				if img == nil {
					continue
				}
				cellWidth := w.px(cells[i].MaxWidth)
				x := left + float64(i)*(cellWidth+gap)
				x += alignOffset(cells[i].Alignment, cellWidth, float64(img.Bounds().Dx()))
				w.current.DrawImage(img, int(math.Round(x)), int(math.Round(w.y)))
			}
			w.y += rowHeight + w.px(row.MarginBottom)
			w.used = true
		}
	}

	for i, page := range w.pages {
		r.drawFooter(page, doc, i+1)
	}
	return w.pages, nil
}

func alignOffset(a Alignment, available, width float64) float64 {
	switch a {
	case AlignCenter:
		return math.Max(0, (available-width)/2)
	case AlignRight:
		return math.Max(0, available-width)
	}
	return 0
}

// decodeAndScale fits the cell image into its column width and the page height
func (r *Renderer) decodeAndScale(cell *Cell, maxHeight float64) (image.Image, error) {
	data, _, err := util.DecodeDataURI(cell.Image.Source)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	maxWidth := cell.MaxWidth * r.scale
	ratio := math.Min(maxWidth/float64(b.Dx()), maxHeight/float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*ratio)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*ratio)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst, nil
}

func (r *Renderer) drawFooter(dc *gg.Context, doc *Document, page int) {
	left := doc.Margins.Left * r.scale
	right := (doc.PageSize.Width - doc.Margins.Right) * r.scale
	top := (doc.PageSize.Height - doc.Margins.Bottom + doc.Footer.Height/3) * r.scale

	if doc.Footer.Rule {
		dc.SetLineWidth(math.Max(1, doc.Footer.RuleWidth*r.scale))
		dc.DrawLine(left, top, right, top)
		dc.Stroke()
	}

	text := doc.Footer.Text(page)
	if text == "" {
		return
	}
	y := top + dc.FontHeight()*1.5
	switch doc.Footer.Alignment {
	case AlignLeft:
		dc.DrawStringAnchored(text, left, y, 0, 0.5)
	case AlignRight:
		dc.DrawStringAnchored(text, right, y, 1, 0.5)
	default:
		dc.DrawStringAnchored(text, (left+right)/2, y, 0.5, 0.5)
	}
}
