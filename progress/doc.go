// Package progress provides sinks for download status messages and byte
// progress: a terminal renderer with a colored progress bar, a structured
// logger, and a no-op sink.
package progress
