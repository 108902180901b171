package report

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GeneratePDF prints the HTML report to a letter-size PDF.
func GeneratePDF(ctx context.Context, html, outPath string) error {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(html)

	var pdf []byte
	if err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11.0).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
