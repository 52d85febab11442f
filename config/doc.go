// Package config loads the YAML configuration that wires a routeboard
// deployment together: cost model tuning, search budget, snapshot store
// selection, metrics endpoint, and log level.
//
// A Loader owns one file. It validates on every read, applies defaults for
// omitted sections, and can watch the file for changes; a reload that fails
// to parse or validate leaves the previous config in force. The schema
// types carry small helpers (CostOptions, SearchOptions, Model, Open,
// SlogLevel) that turn validated settings into the option values the other
// packages consume, so the cmd layer never interprets raw fields itself.
package config
