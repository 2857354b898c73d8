// Package resolve computes the transitive dependency closure for every
// package in a multi-package project manifest.
//
// # Overview
//
// A manifest declares packages, each with a version and a list of direct
// dependency pins. Packages also depend on things indirectly: if app depends
// on core and core depends on base, then app needs base too, at a version
// that satisfies everyone. This package expands every package's direct
// dependency list into the complete, deduplicated, version-arbitrated,
// topologically ordered closure, so build tooling never has to discover a
// missing indirect dependency at build time.
//
// # Basic Usage
//
// Call [Resolve] with the manifest's package list:
//
//	result, err := resolve.Resolve(pkgs, resolve.Options{})
//	if err != nil {
//	    var cerr *resolve.CycleError
//	    if errors.As(err, &cerr) {
//	        // cerr.Chain holds the literal cycle, e.g. [app core app]
//	    }
//	    return err
//	}
//	for _, dep := range result.Resolved["app"] {
//	    // dependencies in build order, at most one entry per package
//	}
//
// [Result.Details] retains provenance for reporting: which version won the
// arbitration, whether the dependency was declared directly, and which
// packages contributed it.
//
// # Version Arbitration
//
// When the same dependency is reached through multiple paths at different
// versions, the highest version wins. Ordering follows [Compare]: a missing
// version yields to any pinned one, a floating NEXT or LATEST marker beats
// any fixed release, and otherwise the three-segment numeric core decides,
// with the optional fourth build-number segment as the final tie-break.
// Malformed segments coerce to zero instead of failing the resolution.
//
// # External Dependencies
//
// Dependency metadata for third-party packages referenced only by an opaque
// version-pinned alias cannot live in the primary manifest. Supply it through
// [Options.External]; each entry replaces (or creates) that package's direct
// dependency list before expansion.
//
// # Failure Model
//
// A dependency cycle is the only fatal condition and aborts the entire
// resolution with a [CycleError]. Everything else degrades gracefully:
// unparseable versions coerce to zero, and dependencies on packages absent
// from the graph are kept as leaf edges and simply never expand further.
// Anomalies are reported through [Options.Logger] when one is set.
//
// # Concurrency
//
// Resolution is synchronous and pure: input slices are never mutated, and
// every call builds its own private graph. Concurrent calls with independent
// inputs are safe.
package resolve
