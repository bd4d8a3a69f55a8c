package notify

import (
	"errors"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type Notify interface {
	Webhook(title string, content string) error
}

// Multi delivers every message to all of its notifiers concurrently.
type Multi struct {
	notifiers []Notify
	pool      *ants.Pool
}

func NewMulti(notifiers ...Notify) (*Multi, error) {
	size := len(notifiers)
	if size == 0 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &Multi{notifiers: notifiers, pool: pool}, nil
}

func (m *Multi) Len() int {
	return len(m.notifiers)
}

// Webhook waits for all deliveries and joins their errors.
func (m *Multi) Webhook(title string, content string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := range m.notifiers {
		n := m.notifiers[i]
		wg.Add(1)
		if err := m.pool.Submit(func() {
			defer wg.Done()
			if err := n.Webhook(title, content); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (m *Multi) Release() {
	m.pool.Release()
}
