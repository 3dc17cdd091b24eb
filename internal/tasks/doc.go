// Package tasks runs long operations over a store snapshot with progress reporting.
//
// # Bulk Export
//
// [ExportEngine.BulkExport] writes every collection in every requested format to one directory:
//
//  1. A snapshot of students, courses and instructors is taken up front, so every file describes the same state
//  2. One job per (collection, format) pair is fed to a bounded worker pool
//  3. Each worker renders its table through the formatter package and writes one file
//  4. An export_manifest.json summarizing every job is written last
//
// XLSX is produced for the students collection only; other collections skip it.
// A failed job is recorded in the result and the manifest without stopping the others.
//
// # Progress Reporting
//
// Operations accept an optional chan<- [ProgressUpdate]. Sends use select with default,
// so a slow or absent reader never blocks the export.
package tasks
