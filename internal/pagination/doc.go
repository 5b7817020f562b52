// Package pagination provides the page arithmetic shared by every product
// table front end.
//
// This package contains:
//   - TotalPages and Bounds: page count and slice range for a page
//   - Meta: response metadata for a rendered page, including the pager layout
//   - Window: the bounded run of page-number buttons centered on the current page
//   - ParseSort: parsing of "field" / "field:order" sort expressions
//
// Pages are 1-based. Nothing here clamps the requested page: an out-of-range
// page yields an empty slice and a pager whose controls stay in range.
package pagination
