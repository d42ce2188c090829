package kernel

import (
	"testing"
	"time"
)

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func TestRestrictDropsRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)

	send := ep.Restrict(RightSend)
	if !send.canSend() || send.canRecv() {
		t.Fatalf("Restrict(RightSend) rights = %b", send.rights)
	}
	if got := send.Restrict(RightRecv); got.Valid() {
		t.Fatal("restricting a send-only capability to recv should be invalid")
	}

	ctx := k.NewContext()
	if _, ok := ctx.RecvChan(send); ok {
		t.Fatal("RecvChan with send-only capability should fail")
	}
	if res := ctx.SendToCapResult(ep.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("SendToCapResult(recv-only) = %s, want %s", res, SendErrToNoSendRight)
	}
}

func TestSendPreservesOrder(t *testing.T) {
	k := New()
	ep := k.NewEndpointSlots(RightSend|RightRecv, 16)
	ctx := k.NewContext()

	for i := 0; i < 16; i++ {
		if res := ctx.SendToCapResult(ep, uint16(i+1), []byte{byte(i)}, Capability{}); res != SendOK {
			t.Fatalf("send %d: %s", i, res)
		}
	}
	for i := 0; i < 16; i++ {
		msg, ok := ctx.TryRecv(ep)
		if !ok {
			t.Fatalf("TryRecv %d: empty", i)
		}
		if msg.Kind != uint16(i+1) || msg.Payload()[0] != byte(i) {
			t.Fatalf("message %d out of order: kind=%d payload=%v", i, msg.Kind, msg.Payload())
		}
	}
}

func TestSendPayloadTooLarge(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()

	res := ctx.SendToCapResult(ep, 1, make([]byte, MaxMessageBytes+1), Capability{})
	if res != SendErrPayloadTooLarge {
		t.Fatalf("SendToCapResult() = %s, want %s", res, SendErrPayloadTooLarge)
	}
}

func TestSendTransfersCapability(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()

	if !ctx.SendToCap(ep, 1, nil, reply.Restrict(RightSend)) {
		t.Fatal("SendToCap failed")
	}
	msg, ok := ctx.TryRecv(ep)
	if !ok {
		t.Fatal("expected message")
	}
	if !msg.Cap.Valid() || msg.Cap.ep != reply.ep || msg.Cap.canRecv() {
		t.Fatalf("transferred cap = %+v, want send-only cap for endpoint %d", msg.Cap, reply.ep)
	}
}

func TestSendToCapRetryZeroLimitDoesNotBlock(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	if !ep.Valid() {
		t.Fatal("expected valid capability")
	}

	ctx := &Context{k: k, taskID: 1}
	to := ep.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}

	res := ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 0)
	if res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
}

func TestSendToCapRetrySucceedsAfterDrain(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	to := ep.Restrict(RightSend)
	ch, ok := ctx.RecvChan(ep.Restrict(RightRecv))
	if !ok || ch == nil {
		t.Fatal("expected recv channel")
	}

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}

	resultCh := make(chan SendResult, 1)
	go func() {
		resultCh <- ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 5)
	}()

	<-ch
	go func() {
		for i := uint64(1); i <= 10; i++ {
			k.TickTo(i)
			time.Sleep(1 * time.Millisecond)
		}
	}()

	select {
	case res := <-resultCh:
		if res != SendOK {
			t.Fatalf("expected SendOK after drain, got %s", res)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for send retry")
	}
}

func TestRecvAfterShutdown(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}

	k.Shutdown()

	if _, ok := ctx.Recv(cap.Restrict(RightRecv)); ok {
		t.Fatal("expected Recv to fail after Shutdown")
	}
	if _, ok := ctx.TryRecv(cap.Restrict(RightRecv)); ok {
		t.Fatal("expected TryRecv to fail after Shutdown")
	}
}

func TestSendAfterShutdown(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k, taskID: 1}
	k.Shutdown()

	res := ctx.SendToCapResult(cap.Restrict(RightSend), 1, []byte("x"), Capability{})
	if res != SendErrNoEndpoint {
		t.Fatalf("expected SendErrNoEndpoint, got %s", res)
	}
}

type funcTask func(*Context)

func (f funcTask) Run(ctx *Context) { f(ctx) }

func TestAddTaskRunsAndWait(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	got := make(chan uint16, 1)

	k.AddTask(funcTask(func(ctx *Context) {
		msg, ok := ctx.Recv(ep.Restrict(RightRecv))
		if ok {
			got <- msg.Kind
		}
	}))

	if !k.NewContext().SendTo(ep.Restrict(RightSend), 42, nil) {
		t.Fatal("SendTo failed")
	}
	k.Wait()

	if kind := <-got; kind != 42 {
		t.Fatalf("task received kind %d, want 42", kind)
	}
}

func TestWaitTickReturnsNewTick(t *testing.T) {
	k := New()
	ctx := k.NewContext()
	done := make(chan uint64, 1)
	go func() { done <- ctx.WaitTick(0) }()

	k.TickTo(3)
	select {
	case tick := <-done:
		if tick != 3 {
			t.Fatalf("WaitTick() = %d, want 3", tick)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitTick did not wake")
	}
	if now := ctx.NowTick(); now != 3 {
		t.Fatalf("NowTick() = %d, want 3", now)
	}
}

func TestSharedBufferKeepsEveryWrite(t *testing.T) {
	var b SharedBuffer

	first, ok := b.Write([]byte("one"))
	if !ok {
		t.Fatal("Write(one) failed")
	}
	second, ok := b.Write([]byte("two"))
	if !ok || second == first {
		t.Fatalf("Write(two) = %d, %v", second, ok)
	}

	data, ok := b.Read(first)
	if !ok || string(data) != "one" {
		t.Fatalf("Read(first) = %q, %v after a later write", data, ok)
	}
	if _, ok := b.Read(first); ok {
		t.Fatal("a sequence can only be read once")
	}
	if data, ok := b.Read(second); !ok || string(data) != "two" {
		t.Fatalf("Read(second) = %q, %v", data, ok)
	}
	if _, ok := b.Read(0); ok {
		t.Fatal("Read(0) should fail")
	}
	if b.Pending() != 0 {
		t.Fatalf("Pending() = %d after reading everything", b.Pending())
	}
}

func TestSharedBufferBounded(t *testing.T) {
	b := NewSharedBuffer(2)
	seq, _ := b.Write([]byte("abc"))
	if _, ok := b.Write(nil); !ok {
		t.Fatal("second Write failed")
	}
	if _, ok := b.Write(nil); ok {
		t.Fatal("Write beyond the slot limit succeeded")
	}

	b.Discard(seq)
	if _, ok := b.Read(seq); ok {
		t.Fatal("Read of a discarded sequence succeeded")
	}
	if _, ok := b.Write(nil); !ok {
		t.Fatal("Write after Discard failed")
	}
}

func TestSharedBufferWriteCopies(t *testing.T) {
	var b SharedBuffer
	src := []byte("two")
	seq, _ := b.Write(src)
	src[0] = 'X'
	if data, _ := b.Read(seq); string(data) != "two" {
		t.Fatalf("Read() = %q, want the bytes at write time", data)
	}
}

func TestShutdownReleasesWaiters(t *testing.T) {
	k := New()
	ctx := k.NewContext()
	woke := make(chan struct{})
	go func() {
		ctx.WaitTick(10)
		close(woke)
	}()

	k.Shutdown()
	k.Shutdown()
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("WaitTick did not return after Shutdown")
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatal("Done() not closed after Shutdown")
	}
	if cap := k.NewEndpoint(RightSend); cap.Valid() {
		t.Fatal("NewEndpoint after Shutdown returned a valid capability")
	}
}

func TestTaskPanicReportedOnce(t *testing.T) {
	k := New()
	got := make(chan PanicInfo, 2)
	k.SetPanicHandler(func(info PanicInfo) { got <- info })

	k.AddTask(funcTask(func(*Context) { panic("first") }))
	k.Wait()
	k.AddTask(funcTask(func(*Context) { panic("second") }))
	k.Wait()

	info := <-got
	if info.Value != "first" || len(info.Stack) == 0 {
		t.Fatalf("PanicInfo = %v with %d stack bytes", info.Value, len(info.Stack))
	}
	if len(got) != 0 {
		t.Fatal("panic handler ran twice")
	}
	if !k.Panicked() {
		t.Fatal("Panicked() = false after a task panic")
	}
	if New().Panicked() {
		t.Fatal("a fresh kernel must not inherit panic state")
	}
}
