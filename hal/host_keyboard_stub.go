//go:build !cgo

package hal

// poll only drains the backlog; there are no devices without the window
// backend.
func (in *hostInput) poll() {
	in.pump()
}
