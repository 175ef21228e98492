// Package download provides the orchestration logic for fetching the
// product catalog and downloading every photo it references.
//
// # Manager
//
// The Manager coordinates the entire process:
//
//  1. Fetch the catalog from the products endpoint
//  2. Collect the photo names of every product, in order
//  3. Download each photo, one at a time, into a storage.Store
//  4. Record failures without stopping the run
//
// # Basic Usage
//
//	manager := download.NewManager(settings, store, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx); err != nil {
//	    // *catalog.FetchError or *catalog.ParseError
//	}
//
//	report, err := manager.StartDownloads(ctx)
//	if err != nil {
//	    // *StorageError: the destination could not be written
//	}
//
// # Failure Handling
//
// A photo whose request fails, whose status is not 2xx, or whose body
// breaks off mid-transfer is recorded in the report as a failure and the
// loop moves on. Partially written photos are removed. Failing to write to
// the store aborts the run.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress can be polled from another goroutine while downloads run.
package download
