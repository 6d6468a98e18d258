package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// Panel lays widgets out in titled sections inside a scrollable box.
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Visible       bool
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	items    []item
	sections []section
}

type item struct {
	widget Widget
	label  string
}

type section struct {
	title string
	start int // first widget index
}

func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section; widgets added next belong to it.
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, section{title: title, start: len(p.items)})
	p.layout()
}

func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*margin, label, min, max, value)
	p.add(s, label)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.add(c, label)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*margin, 20, label, onClick)
	p.add(b, "")
	return b
}

func (p *Panel) add(w Widget, label string) {
	p.items = append(p.items, item{widget: w, label: label})
	p.layout()
}

// layout places every widget according to sections and scroll.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	for i, it := range p.items {
		for next < len(p.sections) && p.sections[next].start == i {
			y += sectionHeight
			next++
		}
		it.widget.MoveTo(p.X+margin, y+15)
		y += it.widget.Height()
	}
}

// contentHeight is the height of everything inside the panel.
func (p *Panel) contentHeight() float64 {
	h := titleHeight + float64(len(p.sections))*sectionHeight
	for _, it := range p.items {
		h += it.widget.Height()
	}
	return h
}

// Contains reports whether the point is over the visible panel.
func (p *Panel) Contains(mx, my float64) bool {
	return p.Visible && inside(mx, my, p.X, p.Y, p.Width, p.Height)
}

// Update reads the ebiten input state and forwards it.
func (p *Panel) Update() {
	mx, my, pressed := Cursor()
	_, dy := ebiten.Wheel()
	p.HandleInput(mx, my, pressed, dy)
}

// HandleInput scrolls by wheel and forwards the cursor to the widgets.
func (p *Panel) HandleInput(mx, my float64, pressed bool, wheel float64) {
	if !p.Visible {
		return
	}
	if wheel != 0 && p.Contains(mx, my) {
		p.ScrollOffset -= wheel * 20
		maxScroll := max(p.contentHeight()-p.Height+40, 0)
		p.ScrollOffset = max(0, min(maxScroll, p.ScrollOffset))
		p.layout()
	}

	// widgets scrolled out of the panel do not react
	if !p.Contains(mx, my) {
		pressed = false
	}
	for _, it := range p.items {
		it.widget.HandleInput(mx, my, pressed)
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	visible := func(y float64) bool { return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-20 }
	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	for i, it := range p.items {
		for next < len(p.sections) && p.sections[next].start == i {
			if visible(y) {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 20,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, p.sections[next].title, int(p.X+margin), int(y+3))
			}
			y += sectionHeight
			next++
		}
		if visible(y) {
			if text := widgetLabel(it); text != "" {
				ebitenutil.DebugPrintAt(screen, text, int(p.X+margin), int(y))
			}
			it.widget.Draw(screen)
		}
		y += it.widget.Height()
	}
}

func widgetLabel(it item) string {
	switch w := it.widget.(type) {
	case *Slider:
		return fmt.Sprintf("%s: %.3g", it.label, w.Value)
	default:
		return it.label
	}
}
