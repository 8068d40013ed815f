// Package worker provides a generic worker pool.
//
// A Pool runs a fixed number of goroutines over a bounded channel. Submit
// waits for queue room, bounded by its context. Stop closes the queue and
// waits for everything already queued to be processed, which makes the pool
// usable for finite batches:
//
//	pool := worker.NewPool(8, 64, func(ctx context.Context, iri owl.IRI) error {
//	    return renderPage(ctx, iri)
//	}, worker.WithErrorHandler(func(iri owl.IRI, err error) {
//	    report.Fail(iri, err)
//	}))
//	if err := pool.Start(ctx); err != nil {
//	    return err
//	}
//	for _, iri := range iris {
//	    if err := pool.Submit(ctx, iri); err != nil {
//	        break
//	    }
//	}
//	err := pool.Stop(time.Minute)
//
// Statistics are always kept with atomic counters and read through Stats.
// Prometheus metrics are optional: WithMetricsRegistry registers
// prefix_queue_depth, prefix_submitted_total, prefix_processed_total,
// prefix_failed_total and prefix_processing_duration_seconds.
//
// Cancelling the context given to Start stops the workers without draining;
// items still queued are abandoned.
package worker
