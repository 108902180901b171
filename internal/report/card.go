package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/xpec-project/xpec/internal/config"
	"github.com/xpec-project/xpec/internal/hw"
)

const renderTimeout = 30 * time.Second

// cardData drives the share-card template.
type cardData struct {
	Cfg    *config.Config
	Width  int
	Height int

	Background template.CSS
	Fit        string
	Overlay    bool

	Host  string
	Board string
	Lines []cardLine
	Stamp string
}

type cardLine struct {
	Label string
	Value string
}

// GenerateCard renders the snapshot as a PNG share card using a
// headless browser. The HTML goes in via a data URL, so no temp files
// are needed.
func GenerateCard(ctx context.Context, snap *hw.Snapshot, cfg *config.Config, outPath string) error {
	width, height, err := cfg.Size()
	if err != nil {
		return err
	}

	html, err := renderCardHTML(snap, cfg, width, height)
	if err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(html)

	var png []byte
	if err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&png, 100),
	); err != nil {
		return fmt.Errorf("render card: %w", err)
	}

	if err := os.WriteFile(outPath, png, 0o644); err != nil {
		return fmt.Errorf("write card: %w", err)
	}
	return nil
}

func renderCardHTML(snap *hw.Snapshot, cfg *config.Config, width, height int) (string, error) {
	tmpl, err := template.New("card").Parse(cardTemplate)
	if err != nil {
		return "", fmt.Errorf("parse card template: %w", err)
	}

	data := cardData{
		Cfg:    cfg,
		Width:  width,
		Height: height,
		Fit:    cssBackgroundSize(cfg.BackgroundFit),
		Host:   snap.Host.Hostname,
		Board:  snap.Host.Board,
		Stamp:  snap.Host.CollectedAt.Format("2006-01-02"),
	}
	if bg, ok := embedImage(cfg.BackgroundImage); ok {
		data.Background = template.CSS(fmt.Sprintf("background-image:url(%s);", bg))
		data.Overlay = cfg.Overlay.Opacity > 0
	}

	if snap.CPU.Model != "" {
		data.Lines = append(data.Lines, cardLine{"CPU", snap.CPU.Model})
	}
	if s := SummarizeMemory(snap.Memory); s != "N/A" {
		data.Lines = append(data.Lines, cardLine{"RAM", s})
	}
	if g := summarizePrimaryGPU(snap.GPUs); g != "N/A" {
		data.Lines = append(data.Lines, cardLine{"GPU", g})
	}
	if s := SummarizeStorage(snap.Storage); s != "N/A" {
		data.Lines = append(data.Lines, cardLine{"Storage", s})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute card template: %w", err)
	}
	return buf.String(), nil
}

// embedImage inlines the background file as a data URI so the headless
// page needs no filesystem access.
func embedImage(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".webp":
		mime = "image/webp"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), true
}

func cssBackgroundSize(fit string) string {
	switch fit {
	case "contain":
		return "contain"
	case "stretch":
		return "100% 100%"
	default:
		return "cover"
	}
}

const cardTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  * { margin: 0; box-sizing: border-box; }
  body {
    width: {{.Width}}px;
    height: {{.Height}}px;
    background-color: {{.Cfg.BackgroundColor}};
    {{.Background}}
    background-size: {{.Fit}};
    background-position: center;
    background-repeat: no-repeat;
    font-family: 'Segoe UI', -apple-system, Roboto, sans-serif;
    color: {{.Cfg.TextColor}};
    position: relative;
    overflow: hidden;
  }
  .overlay {
    position: absolute;
    inset: 0;
    background: {{.Cfg.Overlay.Color}};
    opacity: {{.Cfg.Overlay.Opacity}};
  }
  .content {
    position: relative;
    padding: 48px 64px;
    height: 100%;
    display: flex;
    flex-direction: column;
  }
  h1 { color: {{.Cfg.AccentColor}}; font-size: 44px; margin-bottom: 6px; }
  .sub { color: {{.Cfg.SubColor}}; font-size: 22px; margin-bottom: 36px; }
  .line { font-size: 28px; margin-bottom: 18px; }
  .label {
    display: inline-block;
    width: 150px;
    color: {{.Cfg.SubColor}};
    font-weight: 600;
  }
  .stamp {
    margin-top: auto;
    color: {{.Cfg.DimColor}};
    font-size: 18px;
  }
</style>
</head>
<body>
{{if .Overlay}}<div class="overlay"></div>{{end}}
<div class="content">
  <h1>{{.Cfg.Title}}</h1>
  <p class="sub">{{.Host}}{{if .Board}} &middot; {{.Board}}{{end}}</p>
  {{range .Lines}}
  <p class="line"><span class="label">{{.Label}}</span>{{.Value}}</p>
  {{end}}
  <p class="stamp">{{.Stamp}}</p>
</div>
</body>
</html>
`
