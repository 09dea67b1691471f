// Package concurrent holds small fan-out helpers built on errgroup.
package concurrent

import (
	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element in its own goroutine and waits for
// all of them. If action returns an error, the first error encountered is
// returned.
func ForEach[T any](items []T, action func(T) error) error {
	g := errgroup.Group{}
	for _, item := range items {
		item := item
		g.Go(func() error {
			return action(item)
		})
	}
	return g.Wait()
}

// ForEachLimit is ForEach with at most limit goroutines in flight.
func ForEachLimit[T any](items []T, limit int, action func(T) error) error {
	g := errgroup.Group{}
	g.SetLimit(limit)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return action(item)
		})
	}
	return g.Wait()
}

// ForEachIndex runs action for every i in [0, n) across goroutines, so
// callers can write results into index-addressed slots without locking.
func ForEachIndex(n int, action func(int) error) error {
	g := errgroup.Group{}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return action(i)
		})
	}
	return g.Wait()
}
