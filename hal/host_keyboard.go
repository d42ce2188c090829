//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll turns this frame's ebiten keyboard, mouse and touch state into
// events. Keys come first, then the mouse, then touches.
func (in *hostInput) poll() {
	in.pollKeys()
	in.pollPointer()
	in.pump()
}

func (in *hostInput) pollKeys() {
	for _, r := range ebiten.AppendInputChars(nil) {
		in.key(KeyEvent{Press: true, Rune: r})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		in.key(KeyEvent{Code: KeyEnter, Press: true})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyEnter) {
		in.key(KeyEvent{Code: KeyEnter, Press: false})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.key(KeyEvent{Code: KeyEscape, Press: true})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyEscape) {
		in.key(KeyEvent{Code: KeyEscape, Press: false})
	}
}

// pollPointer reports releases wherever they happen, even off the
// framebuffer.
func (in *hostInput) pollPointer() {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.pointer(PointerEvent{Kind: PointerDown, Source: PointerMouse, X: x, Y: y})
	}
	if !in.mouseSeen || x != in.mouseX || y != in.mouseY {
		in.mouseX, in.mouseY, in.mouseSeen = x, y, true
		in.pointer(PointerEvent{Kind: PointerMove, Source: PointerMouse, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.pointer(PointerEvent{Kind: PointerUp, Source: PointerMouse, X: x, Y: y})
	}

	in.scratch = in.scratch[:0]
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		in.touches[int(id)] = touchState{x: tx, y: ty}
		in.pointer(PointerEvent{Kind: PointerDown, Source: PointerTouch, ID: int(id), X: tx, Y: ty})
	}
	for id, st := range in.touches {
		tid := ebiten.TouchID(id)
		if inpututil.IsTouchJustReleased(tid) {
			in.scratch = append(in.scratch, id)
			in.pointer(PointerEvent{Kind: PointerUp, Source: PointerTouch, ID: id, X: st.x, Y: st.y})
			continue
		}
		tx, ty := ebiten.TouchPosition(tid)
		if tx == st.x && ty == st.y {
			continue
		}
		in.touches[id] = touchState{x: tx, y: ty}
		in.pointer(PointerEvent{Kind: PointerMove, Source: PointerTouch, ID: id, X: tx, Y: ty})
	}
	for _, id := range in.scratch {
		delete(in.touches, id)
	}
}
