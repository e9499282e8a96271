// Package orchestration resolves a battle between two creatures: it validates
// the names, fetches both creatures concurrently through an injected Fetcher
// and applies the winner rule. It decouples the lookup provider from the
// decision logic via the Fetcher and StateObserver interfaces.
package orchestration
