package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input snapshots cursor and button state once per tick.
type Input struct {
	CursorX int
	CursorY int

	WalkPressed  bool
	BreakPressed bool
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.CursorX, i.CursorY = ebiten.CursorPosition()
	i.WalkPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.BreakPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
