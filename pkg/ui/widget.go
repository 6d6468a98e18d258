package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is implemented by everything a Panel can lay out.
type Widget interface {
	// HandleInput reacts to the cursor at (mx, my) with the left button
	// state pressed.
	HandleInput(mx, my float64, pressed bool)
	Draw(screen *ebiten.Image)
	// Height is the vertical space the widget takes, label included.
	Height() float64
	// MoveTo places the widget's top-left corner.
	MoveTo(x, y float64)
}

// Cursor reads the ebiten cursor state once per frame.
func Cursor() (mx, my float64, pressed bool) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func inside(mx, my, x, y, w, h float64) bool {
	return mx >= x && mx <= x+w && my >= y && my <= y+h
}
