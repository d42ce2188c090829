package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless runs the app without opening a window.
//
// Input only arrives through Host.InjectPointer and Host.InjectKey; ready,
// when non-nil, is called with the host before the first tick.
func RunHeadless(ctx context.Context, hostCfg HostConfig, cfg HeadlessConfig, newApp func(HAL) (func() error, error), ready func(*Host)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := NewHost(hostCfg)
	step, err := newApp(h)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(h)
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.in.pump()
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
