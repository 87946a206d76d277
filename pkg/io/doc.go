// Package io reads learning path documents and writes engine results.
//
// # Overview
//
// A document is the input of one engine run: the classified repositories,
// the relations between them and any caller overrides. Documents are stored
// as JSON or YAML; the format is chosen by file extension.
//
// # Document Format
//
//	{
//	  "nodes": [
//	    {"id": "go-tour", "level": "BASIC", "hours": 3, "topics": ["go"]},
//	    {"id": "http-server", "level": "INTERMEDIATE", "hours": 8}
//	  ],
//	  "edges": [
//	    {"from": "go-tour", "to": "http-server", "type": "PREREQUISITE",
//	     "strength": "STRONG", "confidence": 0.9}
//	  ],
//	  "overrides": [
//	    {"kind": "PIN_POSITION", "node": "http-server", "milestone": 1,
//	     "reason": "team onboarding week 2"}
//	  ]
//	}
//
// Enumerations are written in upper case and read case-insensitively.
// Omitted fields take their zero values: level BASIC, edge type
// PREREQUISITE, strength WEAK and origin INFERRED.
//
// # Validation
//
// [ReadDocument] checks identifiers with [errors.ValidateIdentifier] before
// anything reaches the engine. Structural checks (duplicate IDs, unknown
// endpoints, self-loops) are left to the engine, which reports them with
// typed errors.
//
// # Output
//
// [WriteResult] encodes any value, typically an [engine.Run] or
// [resolve.Report], as indented JSON or YAML. [ToDOT] draws a result as a
// Graphviz digraph with one cluster per milestone, and [RenderSVG] renders
// DOT in-process with [github.com/goccy/go-graphviz].
package io
