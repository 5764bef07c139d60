package service

import (
	"context"
	"sync"

	"github.com/niksmo/electrostyle/internal/core/port"
)

// A Service runs the background components of the storefront.
type Service struct {
	ordersProc port.OrdersProcessor
}

// New returns a Service. ordersProc is nil when no broker is configured.
func New(ordersProc port.OrdersProcessor) Service {
	return Service{ordersProc}
}

// Run runs the services components in separate goroutines.
//
// Blocks current goroutine while components is preparing to ready state.
func (s Service) Run(ctx context.Context, stopFn context.CancelFunc) {
	if s.ordersProc == nil {
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go s.ordersProc.Run(ctx, stopFn, &wg)
	wg.Wait()
}

func (s Service) Close() {
	if s.ordersProc != nil {
		s.ordersProc.Close()
	}
}
