package session

import (
	"errors"
	"testing"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/schema"
	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func TestPendingAddAndDuplicate(t *testing.T) {
	testlog.Start(t)
	p := newPendingTable()
	if _, err := p.add(protocol.CmdStatus); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := p.add(protocol.CmdStatus)
	var dup *protocol.PendingError
	if !errors.As(err, &dup) {
		t.Fatalf("expected PendingError, got %v", err)
	}
	if dup.Code != protocol.CmdStatus {
		t.Fatalf("duplicate code: %v", dup.Code)
	}
	// a different code is independent
	if _, err := p.add(protocol.CmdAttitude); err != nil {
		t.Fatalf("add second code: %v", err)
	}
}

func TestPendingResolveDelivers(t *testing.T) {
	testlog.Start(t)
	p := newPendingTable()
	ch, _ := p.add(protocol.CmdAttitude)

	if !p.resolve(protocol.CmdAttitude, schema.Attitude{Yaw: 90}) {
		t.Fatalf("resolve found no entry")
	}
	res := <-ch
	if res.err != nil {
		t.Fatalf("result err: %v", res.err)
	}
	if m := res.msg.(schema.Attitude); m.Yaw != 90 {
		t.Fatalf("yaw: %v", m.Yaw)
	}
	// entry consumed; a second resolve finds nothing
	if p.resolve(protocol.CmdAttitude, schema.Attitude{}) {
		t.Fatalf("resolve matched a consumed entry")
	}
}

func TestPendingRejectDelivers(t *testing.T) {
	testlog.Start(t)
	p := newPendingTable()
	ch, _ := p.add(protocol.CmdStatus)
	want := &protocol.UnsupportedError{Code: protocol.CmdStatus}
	if !p.reject(protocol.CmdStatus, want) {
		t.Fatalf("reject found no entry")
	}
	if res := <-ch; !errors.Is(res.err, want) {
		t.Fatalf("result err: %v", res.err)
	}
}

func TestPendingAbandonArbitration(t *testing.T) {
	testlog.Start(t)
	p := newPendingTable()
	ch, _ := p.add(protocol.CmdStatus)

	// the abandoner owns the outcome while the entry is still present
	if !p.abandon(protocol.CmdStatus, ch) {
		t.Fatalf("abandon should win while entry is present")
	}
	if p.abandon(protocol.CmdStatus, ch) {
		t.Fatalf("second abandon must lose")
	}

	// after a resolver wins, abandon loses and the result is buffered
	ch2, _ := p.add(protocol.CmdStatus)
	p.resolve(protocol.CmdStatus, schema.Status{CycleTime: 7})
	if p.abandon(protocol.CmdStatus, ch2) {
		t.Fatalf("abandon must lose after resolve")
	}
	if res := <-ch2; res.msg.(schema.Status).CycleTime != 7 {
		t.Fatalf("buffered result missing")
	}
}

func TestPendingFailAll(t *testing.T) {
	testlog.Start(t)
	p := newPendingTable()
	a, _ := p.add(protocol.CmdStatus)
	b, _ := p.add(protocol.CmdAttitude)
	p.failAll(protocol.ErrNotConnected)
	for _, ch := range []chan result{a, b} {
		if res := <-ch; !errors.Is(res.err, protocol.ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", res.err)
		}
	}
	// table is reusable afterwards
	if _, err := p.add(protocol.CmdStatus); err != nil {
		t.Fatalf("add after failAll: %v", err)
	}
}
