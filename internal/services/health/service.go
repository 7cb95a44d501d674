package health

import (
	"context"
	"time"
)

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK    bool   `json:"ok"`
	Store string `json:"store"`
	Error string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	store   Pinger
	driver  string
	timeout time.Duration
}

// NewService constructs a health service that pings store, labelled driver.
func NewService(store Pinger, driver string) *Service {
	return &Service{store: store, driver: driver, timeout: 2 * time.Second}
}

// Status pings the store within a short deadline.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true, Store: s.driver}
	if s.store == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		out.OK = false
		out.Error = err.Error()
	}
	return out
}
