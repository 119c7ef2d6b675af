// Package changelog turns unreleased change fragments into a versioned
// markdown changelog document.
//
// This package implements:
//   - Kind registry: ordered, immutable per-kind rendering rules
//   - Line rendering: one fragment to one markdown bullet with issue/PR links
//   - Release assembly: grouping fragments into ordered kind sections
//   - Contributor aggregation: deduplicated credit footer excluding the core team
//   - Document composition: header + kind sections + optional contributor footer
//
// The whole pipeline is a pure, synchronous transformation: given the same
// fragment sequence and configuration it produces byte-identical output.
// All fragment validation happens before any rendering, so a bad fragment
// never yields a half-written document.
package changelog
