package capture

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"pixelpad/hal"
	captureclient "pixelpad/studio/client/capture"
	"pixelpad/studio/kernel"
	"pixelpad/studio/paint"
	"pixelpad/studio/proto"
)

func testSnapshot() paint.Snapshot {
	g := paint.NewGrid(2, 10, func() int { return 40 })
	g.Build(paint.MustColor("white"), paint.MustColor("white"))
	ref, _ := g.Cell(1, 0)
	g.Paint(ref, paint.MustColor("red-500"))
	ref, _ = g.Cell(2, 1)
	g.Paint(ref, paint.MustColor("blue-700"))
	return g.Snapshot()
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestRenderCellCentres(t *testing.T) {
	snap := testSnapshot()
	const cell = 6
	data, err := Render(snap, cell)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != snap.Cols*cell || b.Dy() != snap.Rows*cell {
		t.Fatalf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), snap.Cols*cell, snap.Rows*cell)
	}
	for col := 0; col < snap.Cols; col++ {
		for row := 0; row < snap.Rows; row++ {
			want := snap.At(col, row).RGBA()
			r, g, b, _ := img.At(col*cell+cell/2, row*cell+cell/2).RGBA()
			if !near(uint8(r>>8), want.R) || !near(uint8(g>>8), want.G) || !near(uint8(b>>8), want.B) {
				t.Fatalf("cell (%d,%d) centre = %d,%d,%d, want %v", col, row, r>>8, g>>8, b>>8, want)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if _, err := Render(paint.Snapshot{}, 12); err == nil {
		t.Fatal("Render of an empty snapshot should fail")
	}
}

func TestFileName(t *testing.T) {
	cfg := Config{}.withDefaults()
	if got := cfg.FileName(42); got != "your-art-42.png" {
		t.Fatalf("FileName(42) = %q", got)
	}
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memStorage) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[name] = data
	return nil
}

func TestWriteCollisionOverwrites(t *testing.T) {
	store := &memStorage{}
	s := New(kernel.Capability{}, nil, store, kernel.Capability{}, Config{Rand: func(int) int { return 7 }, CellPx: 2})

	first, err := s.Write(testSnapshot())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	second, err := s.Write(paint.Snapshot{Cols: 1, Rows: 1, Cells: []paint.Color{paint.MustColor("black")}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if first != "your-art-7.png" || second != first {
		t.Fatalf("names = %q, %q", first, second)
	}
	img, err := png.Decode(bytes.NewReader(store.files[first]))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("overwritten file is %v, want 2x2", b)
	}
}

func TestWriteNoStorage(t *testing.T) {
	s := New(kernel.Capability{}, nil, nil, kernel.Capability{}, Config{})
	if _, err := s.Write(testSnapshot()); err != ErrNoStorage {
		t.Fatalf("Write() error = %v, want ErrNoStorage", err)
	}
}

func awaitReply(t *testing.T, ctx *kernel.Context, ep kernel.Capability) captureclient.Outcome {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if msg, ok := ctx.TryRecv(ep); ok {
			out, ok := captureclient.DecodeReply(msg)
			if !ok {
				t.Fatalf("undecodable reply kind %d", msg.Kind)
			}
			return out
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for capture reply")
	return captureclient.Outcome{}
}

func TestServiceWritesDownload(t *testing.T) {
	dir := t.TempDir()
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	reply := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shared := &kernel.SharedBuffer{}
	k.AddTask(New(ep.Restrict(kernel.RightRecv), shared, hal.DirStorage(dir), kernel.Capability{}, Config{}))
	defer func() {
		k.Shutdown()
		k.Wait()
	}()

	ctx := k.NewContext()
	snap := testSnapshot()
	if err := captureclient.Request(ctx, ep.Restrict(kernel.RightSend), shared, 9, snap, reply.Restrict(kernel.RightSend)); err != nil {
		t.Fatalf("Request: %v", err)
	}

	out := awaitReply(t, ctx, reply.Restrict(kernel.RightRecv))
	if out.Err != nil || out.RequestID != 9 {
		t.Fatalf("outcome = %+v", out)
	}
	m := regexp.MustCompile(`^your-art-(\d{1,3})\.png$`).FindStringSubmatch(out.Name)
	if m == nil {
		t.Fatalf("name %q does not match your-art-<n>.png", out.Name)
	}

	data, err := os.ReadFile(filepath.Join(dir, out.Name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != snap.Cols*12 || b.Dy() != snap.Rows*12 {
		t.Fatalf("image is %v, want %dx%d", b, snap.Cols*12, snap.Rows*12)
	}
}

func TestServiceBackToBackRequests(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	reply := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shared := &kernel.SharedBuffer{}
	ctx := k.NewContext()

	first := testSnapshot()
	second := paint.Snapshot{Cols: 1, Rows: 1, Cells: []paint.Color{paint.MustColor("black")}}
	for i, snap := range []paint.Snapshot{first, second} {
		if err := captureclient.Request(ctx, ep.Restrict(kernel.RightSend), shared, uint32(i+1), snap, reply.Restrict(kernel.RightSend)); err != nil {
			t.Fatalf("Request %d: %v", i+1, err)
		}
	}

	var mu sync.Mutex
	next := 0
	store := &memStorage{}
	k.AddTask(New(ep.Restrict(kernel.RightRecv), shared, store, kernel.Capability{}, Config{
		CellPx: 2,
		Rand: func(int) int {
			mu.Lock()
			defer mu.Unlock()
			next++
			return next
		},
	}))
	defer func() {
		k.Shutdown()
		k.Wait()
	}()

	recv := reply.Restrict(kernel.RightRecv)
	for _, want := range []struct {
		id   uint32
		name string
		w, h int
	}{
		{id: 1, name: "your-art-1.png", w: first.Cols * 2, h: first.Rows * 2},
		{id: 2, name: "your-art-2.png", w: 2, h: 2},
	} {
		out := awaitReply(t, ctx, recv)
		if out.Err != nil || out.RequestID != want.id || out.Name != want.name {
			t.Fatalf("outcome = %+v, want request %d written as %s", out, want.id, want.name)
		}
		store.mu.Lock()
		data := store.files[want.name]
		store.mu.Unlock()
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("png.Decode(%s): %v", want.name, err)
		}
		if b := img.Bounds(); b.Dx() != want.w || b.Dy() != want.h {
			t.Fatalf("%s is %v, want %dx%d", want.name, b, want.w, want.h)
		}
	}
	if shared.Pending() != 0 {
		t.Fatalf("Pending() = %d after both captures", shared.Pending())
	}
}

func TestServiceMissingSnapshot(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	reply := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shared := &kernel.SharedBuffer{}
	ctx := k.NewContext()

	ctx.SendToCapResult(ep.Restrict(kernel.RightSend), uint16(proto.MsgCapture), proto.CapturePayload(1, 42, 3, 2), reply.Restrict(kernel.RightSend))

	store := &memStorage{}
	k.AddTask(New(ep.Restrict(kernel.RightRecv), shared, store, kernel.Capability{}, Config{}))
	defer func() {
		k.Shutdown()
		k.Wait()
	}()

	out := awaitReply(t, ctx, reply.Restrict(kernel.RightRecv))
	if out.Err == nil || out.RequestID != 1 {
		t.Fatalf("outcome = %+v, want an error for request 1", out)
	}
	if len(store.files) != 0 {
		t.Fatalf("request without a snapshot wrote %d files", len(store.files))
	}
}
