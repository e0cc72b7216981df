// Package export renders saved runs as standalone SVG documents.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/storage"
)

var palette = []string{"#ffcc00", "#00ccff", "#ff00ff", "#00ff88", "#ff6644", "#aaaaff"}

// Orbits draws the xy projection of every recorded trajectory. Each body
// gets a path and a dot at its last position; periapsis and apoapsis
// points are marked for bodies with an apsis entry. It returns "" when the
// run has no samples.
func Orbits(run *storage.Run, width, height int) string {
	if run == nil || len(run.Trajectory) == 0 {
		return ""
	}

	tracks := make(map[string][]mgl64.Vec3)
	all := make([]mgl64.Vec3, 0, len(run.Trajectory))
	for _, s := range run.Trajectory {
		tracks[s.Body] = append(tracks[s.Body], s.Position)
		all = append(all, s.Position)
	}
	for _, e := range run.Apsides {
		all = append(all, e.PeriapsisPosition, e.ApoapsisPosition)
	}
	f := newFrame(all, width, height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	names := bodyOrder(run, tracks)
	for i, name := range names {
		track := tracks[name]
		color := palette[i%len(palette)]

		if moved(track) {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="0.7" d="M`, color))
			for j, p := range track {
				x, y := f.project(p)
				if j == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := f.project(track[len(track)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11">%s</text>
`, x, y, color, x+6, y-6, color, html.EscapeString(name)))
	}

	for _, e := range run.Apsides {
		for _, p := range []mgl64.Vec3{e.PeriapsisPosition, e.ApoapsisPosition} {
			x, y := f.project(p)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="none" stroke="#888899"/>
`, x, y))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// bodyOrder is the metadata body order, followed by any body that only
// appears in the trajectory.
func bodyOrder(run *storage.Run, tracks map[string][]mgl64.Vec3) []string {
	seen := make(map[string]bool, len(tracks))
	var names []string
	for _, name := range run.Meta.Bodies {
		if _, ok := tracks[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, s := range run.Trajectory {
		if !seen[s.Body] {
			names = append(names, s.Body)
			seen[s.Body] = true
		}
	}
	return names
}

func moved(track []mgl64.Vec3) bool {
	for _, p := range track[1:] {
		if p != track[0] {
			return true
		}
	}
	return false
}

// frame maps physical xy coordinates to SVG pixels with one scale for both
// axes, so circular orbits stay circular.
type frame struct {
	cx, cy float64
	mx, my float64
	k      float64
}

func newFrame(points []mgl64.Vec3, width, height int) frame {
	minX, maxX := points[0].X(), points[0].X()
	minY, maxY := points[0].Y(), points[0].Y()
	for _, p := range points {
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}

	rangeX := (maxX - minX) * 1.2
	rangeY := (maxY - minY) * 1.2
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	return frame{
		cx: float64(width) / 2,
		cy: float64(height) / 2,
		mx: (minX + maxX) / 2,
		my: (minY + maxY) / 2,
		k:  min(float64(width)/rangeX, float64(height)/rangeY),
	}
}

func (f frame) project(p mgl64.Vec3) (float64, float64) {
	return f.cx + (p.X()-f.mx)*f.k, f.cy - (p.Y()-f.my)*f.k
}
