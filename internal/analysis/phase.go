package analysis

import (
	"strings"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

func validChannels(idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= len(ChannelNames) {
			return false
		}
	}
	return true
}

// FromSeries builds a portrait from recorded snapshots of a run on body.
func FromSeries(body *dynamo.State, snapshots []sim.Snapshot, xIdx, yIdx int) *PhasePortrait2D {
	if !validChannels(xIdx, yIdx) {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(snapshots)),
	}
	for _, sn := range snapshots {
		c := Channels(sn.State(body))
		portrait.Points = append(portrait.Points, Point{X: c[xIdx], Y: c[yIdx]})
	}
	return portrait
}

// GeneratePhasePortrait steps a copy of s0 under a constant external moment
// and records the chosen channels after every step.
func GeneratePhasePortrait(
	s0 *dynamo.State,
	integ dynamo.Integrator,
	ext dynamo.Moment,
	xIdx, yIdx int,
	dt, duration float64,
) *PhasePortrait2D {
	if !validChannels(xIdx, yIdx) || !(dt > 0) {
		return nil
	}

	steps := int(duration/dt + 1e-9)
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, steps),
	}

	s := s0.Clone()
	for i := 0; i < steps; i++ {
		if err := s.StepWith(integ, dt, ext); err != nil || !s.IsValid() {
			break
		}
		s.Renormalize()

		c := Channels(s)
		portrait.Points = append(portrait.Points, Point{X: c[xIdx], Y: c[yIdx]})
	}

	return portrait
}

// span is a padded plotting range along one axis.
type span struct{ lo, hi float64 }

func spanOf(vals func(i int) float64, n int) span {
	s := span{vals(0), vals(0)}
	for i := 1; i < n; i++ {
		s.lo = min(s.lo, vals(i))
		s.hi = max(s.hi, vals(i))
	}
	w := s.hi - s.lo
	if w == 0 {
		w = 1
	}
	return span{s.lo - 0.1*w, s.hi + 0.1*w}
}

// cell maps v onto [0, cells-1].
func (s span) cell(v float64, cells int) int {
	return int((v - s.lo) / (s.hi - s.lo) * float64(cells-1))
}

func (s span) covers(v float64) bool { return s.lo <= v && v <= s.hi }

// PhasePortraitToASCII plots the portrait as a width x height character
// grid, with axes drawn where zero is in range.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}
	pts := portrait.Points
	xs := spanOf(func(i int) float64 { return pts[i].X }, len(pts))
	ys := spanOf(func(i int) float64 { return pts[i].Y }, len(pts))

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	put := func(r, c int, ch rune, over bool) {
		if r < 0 || r >= height || c < 0 || c >= width {
			return
		}
		if over || grid[r][c] == ' ' {
			grid[r][c] = ch
		}
	}

	for _, p := range pts {
		put(height-1-ys.cell(p.Y, height), xs.cell(p.X, width), '•', true)
	}
	if xs.covers(0) {
		c := xs.cell(0, width)
		for r := 0; r < height; r++ {
			put(r, c, '│', false)
		}
	}
	if ys.covers(0) {
		r := height - 1 - ys.cell(0, height)
		for c := 0; c < width; c++ {
			put(r, c, '─', false)
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []Point
}

// GeneratePoincareSection records channels recordX and recordY each time
// channel crossIdx rises through threshold. The recorded point is linearly
// interpolated to the crossing.
func GeneratePoincareSection(
	s0 *dynamo.State,
	integ dynamo.Integrator,
	ext dynamo.Moment,
	crossIdx int,
	threshold float64,
	recordX, recordY int,
	dt, duration float64,
) *PoincareSection {
	if !validChannels(crossIdx, recordX, recordY) || !(dt > 0) {
		return nil
	}

	section := &PoincareSection{Points: make([]Point, 0)}

	s := s0.Clone()
	prev := Channels(s)
	for i := 0; i < int(duration/dt+1e-9); i++ {
		if err := s.StepWith(integ, dt, ext); err != nil || !s.IsValid() {
			break
		}
		s.Renormalize()
		curr := Channels(s)

		if prev[crossIdx] < threshold && curr[crossIdx] >= threshold {
			frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
			section.Points = append(section.Points, Point{
				X: prev[recordX] + frac*(curr[recordX]-prev[recordX]),
				Y: prev[recordY] + frac*(curr[recordY]-prev[recordY]),
			})
		}
		prev = curr
	}

	return section
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
