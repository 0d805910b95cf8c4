package session

import (
	"sync"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/protocol/schema"
)

type result struct {
	msg schema.Message
	err error
}

// pendingTable holds the outstanding requests, keyed by code. The table is
// owned exclusively by the session: entries are inserted on issue and
// removed by exactly one of match, rejection, timeout, or teardown. The
// remover is the only sender on the entry's channel, so a match and a
// timeout racing on the same entry resolve to exactly one outcome.
//
// One outstanding request per code: the matching order of duplicates would
// be undefined, so a second request for a pending code is refused outright.
type pendingTable struct {
	mu    sync.Mutex
	items map[protocol.Code]chan result
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		items: make(map[protocol.Code]chan result),
	}
}

// add registers a new pending request and returns its result channel.
func (t *pendingTable) add(code protocol.Code) (chan result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[code]; exists {
		return nil, &protocol.PendingError{Code: code}
	}
	ch := make(chan result, 1)
	t.items[code] = ch
	return ch, nil
}

// resolve removes the entry for code, if any, and delivers the message.
func (t *pendingTable) resolve(code protocol.Code, msg schema.Message) bool {
	return t.complete(code, result{msg: msg})
}

// reject removes the entry for code, if any, and delivers the error.
func (t *pendingTable) reject(code protocol.Code, err error) bool {
	return t.complete(code, result{err: err})
}

func (t *pendingTable) complete(code protocol.Code, res result) bool {
	t.mu.Lock()
	ch, ok := t.items[code]
	if ok {
		delete(t.items, code)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	ch <- res
	return true
}

// abandon removes the entry iff it is still the given channel. Used on the
// timeout path: true means the caller owns the outcome; false means a
// resolver won the race and a result is already on the channel.
func (t *pendingTable) abandon(code protocol.Code, ch chan result) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.items[code]
	if !ok || cur != ch {
		return false
	}
	delete(t.items, code)
	return true
}

// failAll rejects every outstanding request, e.g. on disconnect.
func (t *pendingTable) failAll(err error) {
	t.mu.Lock()
	items := t.items
	t.items = make(map[protocol.Code]chan result)
	t.mu.Unlock()
	for _, ch := range items {
		ch <- result{err: err}
	}
}
