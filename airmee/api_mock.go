package airmee

import (
	"context"
	"errors"
	"sync"
)

// MockTransport is a Transport double that replays a scripted sequence of
// responses and records every request it sees. The zero value is usable.
type MockTransport struct {
	mu       sync.Mutex
	script   []mockExchange
	requests []*Request

	// OnSend, when set, takes over entirely; the script is ignored.
	OnSend func(ctx context.Context, req *Request) (*Response, error)
}

type mockExchange struct {
	resp *Response
	err  error
}

// NewMockTransport creates a mock transport preloaded with responses, served
// in order.
func NewMockTransport(responses ...*Response) *MockTransport {
	m := &MockTransport{}
	for _, resp := range responses {
		m.Enqueue(resp)
	}
	return m
}

// Enqueue appends a response to the script.
func (m *MockTransport) Enqueue(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockExchange{resp: resp})
}

// EnqueueError appends a transport-level failure to the script.
func (m *MockTransport) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockExchange{err: err})
}

// Send records the request and replays the next scripted exchange.
func (m *MockTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if m.OnSend != nil {
		hook := m.OnSend
		m.mu.Unlock()
		return hook(ctx, req)
	}
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, errors.New("mock transport: no scripted response left")
	}
	next := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	return next.resp, next.err
}

// Requests returns the requests recorded so far.
func (m *MockTransport) Requests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent recorded request, or nil.
func (m *MockTransport) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

var _ Transport = (*MockTransport)(nil)
