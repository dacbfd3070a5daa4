// Package scheduler implements the incremental result cache and fetch
// scheduler behind a progressive search view.
//
// A search resolves a term into an ordered list of object document
// URLs in one round trip. The scheduler then admits that list a page
// at a time into a FIFO of batches, fetches each batch's documents
// concurrently, and paces successive batch dispatches on a fixed
// cool-down so the upstream rate budget is respected. Individual
// failures land in a terminal bad set without disturbing sibling
// fetches; a view layer reads the growing document store through
// non-blocking accessors and reacts to three notifications:
// document-updated, batch-complete, and pacing-tick.
//
// The scheduler runs a single event-loop goroutine that exclusively
// owns the queue, the pacing timer, and all dispatch decisions.
// Concurrency is outstanding network replies, delivered to the loop as
// completion events in arbitrary order and tagged with a search
// generation so replies from an abandoned search are dropped.
//
// Example usage:
//
//	client, _ := catalog.New(catalog.DefaultConfig("metsearch/0.1.0 (dev@example.com)"))
//	sched, _ := scheduler.New(scheduler.DefaultConfig(client, client))
//	sched.Start(ctx)
//	defer sched.Close()
//
//	n, err := sched.StartSearch(ctx, "sunflower")
//	// documents stream in; read them via sched.Document(url)
package scheduler
