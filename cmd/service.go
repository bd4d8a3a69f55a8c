package main

import "sync"

type service interface {
	Start() error
	Close()
}

// runningService owns the active service; config reloads swap it from the
// watcher goroutine while main closes it on shutdown.
type runningService struct {
	mu  sync.Mutex
	svc service
}

// replace stops the current service and starts next in its place.
func (r *runningService) replace(next service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.svc.Close()
	r.svc = next
	return r.svc.Start()
}

func (r *runningService) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.svc.Close()
}
