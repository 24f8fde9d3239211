package invoice

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 in inches, with 10mm margins.
const (
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 0.3937
)

// Printer turns an HTML page into a PDF.
type Printer interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}

// Renderer はヘッドレスChromiumで請求書PDFを生成します。
type Renderer struct {
	// BrowserBin overrides the browser rod would download or look up.
	BrowserBin string
	Timeout    time.Duration
}

func NewRenderer(bin string) *Renderer {
	return &Renderer{BrowserBin: bin, Timeout: 30 * time.Second}
}

// PrintOptions are the page settings used for every invoice.
func PrintOptions() *proto.PagePrintToPDF {
	w, h, m := a4Width, a4Height, margin
	return &proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &w,
		PaperHeight:     &h,
		MarginTop:       &m,
		MarginBottom:    &m,
		MarginLeft:      &m,
		MarginRight:     &m,
	}
}

func (r *Renderer) PDF(ctx context.Context, html string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	l := launcher.New().
		Headless(true).
		Leakless(false).
		NoSandbox(true)
	if r.BrowserBin != "" {
		l = l.Bin(r.BrowserBin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("WARN: failed to close browser: %v", err)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set invoice content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to load invoice content: %w", err)
	}

	stream, err := page.PDF(PrintOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to print invoice: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	return data, nil
}
