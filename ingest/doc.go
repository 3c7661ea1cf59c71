// Package ingest parses external data into items and exports core types back out.
//
// Supported input formats:
//   - JSON: an array of objects with id/text/category/embedding/metadata fields;
//     unrecognized scalar fields are folded into metadata
//   - CSV: a header row naming the same fields, one item per data row
//   - plain text: one item per non-empty line
//
// Records without usable text (fewer than 3 characters after trimming) are
// skipped. Missing ids are defaulted to positional synthetic ids. Malformed
// embeddings and metadata are dropped silently rather than failing the parse.
//
// Export writes items, graphs, and search results as JSON (full fidelity) or
// items as CSV (flattened, with embedding and metadata as JSON strings).
package ingest
