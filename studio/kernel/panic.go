package kernel

import "runtime/debug"

// PanicInfo describes a task that panicked.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler for task panics on this kernel.
//
// The handler runs at most once, for the first panic, on the panicking
// task's goroutine. It must not panic. Install it before adding tasks.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.mu.Lock()
	k.panicHandler = fn
	k.mu.Unlock()
}

// Panicked reports whether any task on this kernel has panicked.
func (k *Kernel) Panicked() bool {
	return k.panicked.Load()
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panicOnce.Do(func() {
		k.panicked.Store(true)
		info.Stack = debug.Stack()

		k.mu.Lock()
		fn := k.panicHandler
		k.mu.Unlock()
		if fn != nil {
			fn(info)
		}
	})
}
