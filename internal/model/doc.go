// Package model defines the core data structures used throughout
// the catalog photo downloader.
//
// # Catalog
//
// Catalog holds the products returned by the catalog API in catalog
// order. Each Product keeps its raw JSON fields plus the decoded photo list:
//
//	catalog := &model.Catalog{Products: products}
//	names := catalog.PhotoNames() // flat, ordered, duplicates kept
//
// # Report
//
// Report summarizes one download run:
//
//	report := model.NewReport(len(names), "/photos")
//	report.AddFailure("a.jpg", err)
//	fmt.Printf("%d/%d success\n", report.Succeeded(), report.Total)
package model
