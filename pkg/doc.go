// Package pkg provides the core libraries for Deptower manifest resolution.
//
// # Overview
//
// Deptower resolves the transitive dependency closure of a multi-package
// project manifest: every package's full set of dependencies, with version
// conflicts arbitrated toward the higher version and packages ordered so
// dependencies precede dependents. The pkg directory is organized into
// three main areas:
//
//  1. [resolve] - The resolution engine (versions, merging, expansion, ordering)
//  2. [manifest], [bump], [report], [render] - Manifest handling and outputs
//  3. [cache], [server], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through Deptower:
//
//	deptower.json manifest (+ optional TOML external registry)
//	         ↓
//	    [manifest] package (load + validate)
//	         ↓
//	    [resolve] package (merge externals, expand, arbitrate, order)
//	         ↓
//	    [report] / [render] packages (text, JSON, DOT, SVG output)
//
// # Quick Start
//
// Load a manifest and resolve its closure:
//
//	import (
//	    "github.com/matzehuels/deptower/pkg/manifest"
//	    "github.com/matzehuels/deptower/pkg/resolve"
//	)
//
//	p, _ := manifest.Load("deptower.json")
//	res, err := resolve.Resolve(p.Packages, resolve.Options{
//	    External: p.ExternalDependencies,
//	})
//	if err != nil {
//	    // a *resolve.CycleError names the cycle chain
//	}
//	for _, name := range res.Order {
//	    fmt.Println(name, res.Resolved[name])
//	}
//
// # Main Packages
//
// ## Resolution
//
// [resolve] - The engine. Four-segment version comparison with floating
// markers (.NEXT, .LATEST), external dependency merging, transitive
// expansion with cycle detection, deterministic topological ordering, and
// per-dependency provenance (direct pins, contributors).
//
// [manifest] - Project manifest loading (JSON or YAML), validation, and
// the TOML external dependency registry overlay.
//
// [bump] - Version mutation: increment a segment, keep floating markers,
// propagate the new version to dependents' pins.
//
// ## Outputs
//
// [report] - Run reports with IDs and timestamps, rendered as styled text
// or JSON.
//
// [render] - Dependency graphs as Graphviz DOT and in-process SVG.
//
// ## Infrastructure
//
// [cache] - Resolution caching keyed by manifest content, with file,
// memory, Redis, MongoDB, and null backends.
//
// [server] - The HTTP resolve API.
//
// [observability] - Hook registry for metrics without framework imports.
//
// [buildinfo] - Build-time version metadata injected via ldflags.
//
// [resolve]: github.com/matzehuels/deptower/pkg/resolve
// [manifest]: github.com/matzehuels/deptower/pkg/manifest
// [bump]: github.com/matzehuels/deptower/pkg/bump
// [report]: github.com/matzehuels/deptower/pkg/report
// [render]: github.com/matzehuels/deptower/pkg/render
// [cache]: github.com/matzehuels/deptower/pkg/cache
// [server]: github.com/matzehuels/deptower/pkg/server
// [observability]: github.com/matzehuels/deptower/pkg/observability
// [buildinfo]: github.com/matzehuels/deptower/pkg/buildinfo
package pkg
