// Package report renders a collected snapshot as an HTML page and a
// shareable PNG card.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/xpec-project/xpec/internal/config"
	"github.com/xpec-project/xpec/internal/hw"
)

// pageData is everything the HTML template consumes.
type pageData struct {
	Cfg  *config.Config
	Snap *hw.Snapshot

	MemorySummary  string
	StorageSummary string
	PrimaryGPU     string
}

var funcMap = template.FuncMap{
	"gb":    hw.FormatGB,
	"ghz":   hw.FormatClockGHz,
	"lower": strings.ToLower,
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	"mts": func(v uint32) string {
		if v == 0 {
			return "N/A"
		}
		return fmt.Sprintf("%d MT/s", v)
	},
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05 MST")
	},
	"sortedKeys": sortedDiagnostics,
}

// GenerateHTML renders the full-page report.
func GenerateHTML(snap *hw.Snapshot, cfg *config.Config) (string, error) {
	tmpl, err := template.New("page").Funcs(funcMap).Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}
	data := pageData{
		Cfg:            cfg,
		Snap:           snap,
		MemorySummary:  SummarizeMemory(snap.Memory),
		StorageSummary: SummarizeStorage(snap.Storage),
		PrimaryGPU:     summarizePrimaryGPU(snap.GPUs),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.String(), nil
}

// SummarizeMemory describes the installed DIMMs in one line, e.g.
// "32.0 GB (2x16.0 GB) @ 3200 MT/s".
func SummarizeMemory(modules []hw.MemoryModule) string {
	if len(modules) == 0 {
		return "N/A"
	}
	var total uint64
	sizes := map[uint64]int{}
	var speed uint32
	for _, m := range modules {
		total += m.CapacityBytes
		sizes[m.CapacityBytes]++
		if m.SpeedMTs > speed {
			speed = m.SpeedMTs
		}
	}
	s := hw.FormatGB(total)
	if len(sizes) == 1 {
		s += fmt.Sprintf(" (%dx%s)", len(modules), hw.FormatGB(modules[0].CapacityBytes))
	} else {
		s += fmt.Sprintf(" (%d modules)", len(modules))
	}
	if speed > 0 {
		s += fmt.Sprintf(" @ %d MT/s", speed)
	}
	return s
}

// SummarizeStorage groups devices by media type, largest first, e.g.
// "2x SSD (1024.0 GB), 1x HDD (4000.8 GB)".
func SummarizeStorage(devices []hw.StorageDevice) string {
	if len(devices) == 0 {
		return "N/A"
	}
	type group struct {
		count int
		bytes uint64
	}
	groups := map[hw.MediaType]*group{}
	for _, d := range devices {
		g := groups[d.Media]
		if g == nil {
			g = &group{}
			groups[d.Media] = g
		}
		g.count++
		g.bytes += d.SizeBytes
	}
	order := []hw.MediaType{hw.MediaSSD, hw.MediaHDD, hw.MediaUnknown}
	var parts []string
	for _, m := range order {
		g := groups[m]
		if g == nil {
			continue
		}
		label := string(m)
		if m == hw.MediaUnknown {
			label = "Disk"
		}
		parts = append(parts, fmt.Sprintf("%dx %s (%s)", g.count, label, hw.FormatGB(g.bytes)))
	}
	return strings.Join(parts, ", ")
}

// summarizePrimaryGPU picks the device with the most VRAM; ties and
// VRAM-less listings fall back to the first enumerated.
func summarizePrimaryGPU(gpus []hw.GPUInfo) string {
	if len(gpus) == 0 {
		return "N/A"
	}
	idx := 0
	for i := range gpus {
		if gpus[i].VRAMBytes > gpus[idx].VRAMBytes {
			idx = i
		}
	}
	g := gpus[idx]
	if g.VRAMBytes > 0 {
		return fmt.Sprintf("%s (%s)", g.Name, hw.FormatGB(g.VRAMBytes))
	}
	return g.Name
}

// sortedDiagnostics returns category names in stable order for display.
func sortedDiagnostics(diags map[string][]string) []string {
	keys := make([]string, 0, len(diags))
	for k := range diags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Cfg.Title}}</title>
<style>
  body {
    font-family: 'Segoe UI', -apple-system, Roboto, sans-serif;
    background: {{.Cfg.BackgroundColor}};
    color: {{.Cfg.TextColor}};
    max-width: 1100px;
    margin: 0 auto;
    padding: 28px;
  }
  h1 { color: {{.Cfg.AccentColor}}; margin-bottom: 4px; }
  h2 { color: {{.Cfg.SubColor}}; border-bottom: 1px solid {{.Cfg.DimColor}}; padding-bottom: 6px; }
  .meta { color: {{.Cfg.DimColor}}; font-size: 0.9em; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; margin: 12px 0 28px; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid {{.Cfg.DimColor}}; }
  th { color: {{.Cfg.SubColor}}; font-weight: 600; text-transform: uppercase; font-size: 0.8em; }
  .summary { color: {{.Cfg.AccentColor}}; font-weight: 600; }
  .tag { display: inline-block; padding: 1px 8px; border-radius: 8px; font-size: 0.8em; }
  .tag.explicit { background: #1d4; color: #042; }
  .tag.heuristic { background: {{.Cfg.DimColor}}; color: {{.Cfg.TextColor}}; }
  .diag { color: {{.Cfg.DimColor}}; font-size: 0.85em; font-family: monospace; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Cfg.Title}}</h1>
<p class="meta">{{.Snap.Host.Hostname}} &middot; {{.Snap.Host.OS}} {{.Snap.Host.OSVersion}} ({{.Snap.Host.Architecture}}){{if .Snap.Host.Board}} &middot; {{.Snap.Host.Board}}{{end}} &middot; collected {{formatTime .Snap.Host.CollectedAt}}</p>

<h2>Processor</h2>
{{if .Snap.CPU.Model}}
<table>
<tr><th>Model</th><th>Cores</th><th>Threads</th><th>Base clock</th><th>Max clock</th></tr>
<tr>
  <td>{{.Snap.CPU.Model}}</td>
  <td>{{if .Snap.CPU.Cores}}{{.Snap.CPU.Cores}}{{else}}N/A{{end}}</td>
  <td>{{if .Snap.CPU.Threads}}{{.Snap.CPU.Threads}}{{else}}N/A{{end}}</td>
  <td>{{ghz .Snap.CPU.BaseClockMHz}}</td>
  <td>{{ghz .Snap.CPU.MaxClockMHz}}</td>
</tr>
</table>
{{else}}<p>No processor information available.</p>{{end}}

<h2>Memory <span class="summary">{{.MemorySummary}}</span></h2>
{{if .Snap.Memory}}
<table>
<tr><th>Slot</th><th>Capacity</th><th>Speed</th><th>Manufacturer</th><th>Part number</th></tr>
{{range .Snap.Memory}}
<tr>
  <td>{{orNA .SlotLabel}}</td>
  <td>{{gb .CapacityBytes}}</td>
  <td>{{mts .SpeedMTs}}</td>
  <td>{{orNA .Manufacturer}}</td>
  <td>{{orNA .PartNumber}}</td>
</tr>
{{end}}
</table>
{{else}}<p>No memory modules detected.</p>{{end}}

<h2>Graphics <span class="summary">{{.PrimaryGPU}}</span></h2>
{{if .Snap.GPUs}}
<table>
<tr><th>Device</th><th>Vendor</th><th>VRAM</th><th>VRAM source</th><th>Bus</th></tr>
{{range .Snap.GPUs}}
<tr>
  <td>{{.Name}}</td>
  <td>{{orNA .Vendor}}</td>
  <td>{{gb .VRAMBytes}}</td>
  <td>{{orNA .VRAMSource}}</td>
  <td>{{orNA .BusID}}</td>
</tr>
{{end}}
</table>
{{else}}<p>No graphics devices detected.</p>{{end}}

<h2>Storage <span class="summary">{{.StorageSummary}}</span></h2>
{{if .Snap.Storage}}
<table>
<tr><th>Model</th><th>Size</th><th>Type</th><th>Detection</th><th>Bus</th></tr>
{{range .Snap.Storage}}
<tr>
  <td>{{.Model}}</td>
  <td>{{gb .SizeBytes}}</td>
  <td>{{.Media}}</td>
  <td><span class="tag {{lower (printf "%s" .Detection)}}">{{.Detection}}</span></td>
  <td>{{orNA .Bus}}</td>
</tr>
{{end}}
</table>
{{else}}<p>No storage devices detected.</p>{{end}}

{{if .Snap.Diagnostics}}
<h2>Collection notes</h2>
{{range $cat := sortedKeys .Snap.Diagnostics}}
<p class="diag"><strong>{{$cat}}</strong>
{{range index $.Snap.Diagnostics $cat}}
{{.}}{{end}}</p>
{{end}}
{{end}}
</body>
</html>
`
