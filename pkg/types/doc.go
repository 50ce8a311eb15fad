// Package types defines the vocabulary shared by the gridview engine and its
// callers: column definitions, sort, view and highlight state, row and bulk
// actions, the strategy interfaces injected at construction, the engine
// Options and Config, and the Snapshot handed back on every recomputation.
//
// Row data is opaque. The engine reads rows only through the accessors and
// strategies supplied here.
package types
