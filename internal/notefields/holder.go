package notefields

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Holder guards the lifecycle of one lazily built Statements. Once closed it
// stays closed.
type Holder struct {
	mu     sync.Mutex
	conn   Preparer
	log    *zap.Logger
	inst   *Statements
	closed bool
}

// NewHolder returns a holder that prepares statements on conn. A nil log
// discards output.
func NewHolder(conn Preparer, log *zap.Logger) *Holder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Holder{conn: conn, log: log}
}

var defaultHolder = NewHolder(nil, nil)

// Install hands the process-wide holder the connection owned by the
// application's database lifecycle. It must run before GetInstance.
func Install(conn Preparer, log *zap.Logger) {
	defaultHolder.install(conn, log)
}

// GetInstance returns the process-wide Statements, building it on first use.
func GetInstance() (*Statements, error) {
	return defaultHolder.Get()
}

// Close retires the process-wide Statements.
func Close() error {
	return defaultHolder.Close()
}

func (h *Holder) install(conn Preparer, log *zap.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if log != nil {
		h.log = log
	}
	h.conn = conn
}

// Get returns the live Statements, preparing them on the first call. It
// returns ErrClosed after Close, and an error wrapping ErrUnavailable when
// the statements cannot be prepared.
func (h *Holder) Get() (*Statements, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}
	if h.inst != nil {
		return h.inst, nil
	}
	if h.conn == nil {
		h.log.Error("no connection installed")
		return nil, ErrUnavailable
	}
	s, err := newStatements(h.conn, h.log)
	if err != nil {
		h.log.Error("building statements", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	h.inst = s
	return s, nil
}

// Close releases every statement the instance owns. Calling it again only
// logs.
func (h *Holder) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		h.log.Info("statements were already closed")
		return nil
	}
	h.closed = true
	inst := h.inst
	h.inst = nil
	if inst == nil {
		return nil
	}
	return inst.close()
}
