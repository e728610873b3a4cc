// Package ir provides the request-scoped data model of the document core:
// input records, page profiles and the draw instructions that flow from the
// layout engine to the serializer.
//
// This package contains type definitions and their canonical form only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types in the instruction model. Lengths are int64
//     micrometres, font sizes are integer points.
//   - Instructions are immutable values, consumed once by the serializer.
//   - Coordinates are measured from the page's bottom-left corner.
//   - All JSON tags use snake_case
package ir
