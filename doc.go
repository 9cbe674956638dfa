// Package tabular reshapes tables of JSON-like rows.
//
// A [Table] is an ordered sequence of [Row] values. Each row holds an
// insertion-ordered [Object] of fields plus an optional [Binary] map of
// attachments. Rows need not share the same fields; [Columns] derives the
// ordered union of field names whenever an operation needs "all columns".
//
// # Values
//
// Cell values are a tagged union, [Value], over null, bool, number, string,
// object and array. Operations branch on [Value.Kind] rather than on Go
// types. Objects keep the order in which fields were first set, and JSON
// decoding through [DecodeRecords] or [DecodeItems] preserves source order.
//
// # Operations
//
// Every operation is a pure function: the input table is never modified and
// a fresh table is returned.
//
//   - [Transpose] turns columns into rows keyed by original row index.
//   - [NavigateCell], [NavigateColumn] and [NavigateRow] drill into a field
//     and re-emit its contents as rows, optionally fanning arrays out
//     (LoopArray) and merging the source fields back in (Expand).
//   - [DemoteHeader] and [PromoteHeader] move column names into and out of
//     the first row.
//   - [Count] produces a single row holding a row, column or cell count at a
//     dot-separated destination key.
//
// Attachments are copied onto every row derived from a single source row.
// Transpose, Count and the header row built by DemoteHeader have no single
// source row and carry none.
//
// # Pipelines
//
// A [Step] describes one operation the way a host configures it:
//
//	steps, err := tabular.ParseSteps([]byte(`
//	- action: navigate
//	  navigateType: col
//	  col: tags
//	  loopArray: true
//	- action: count
//	  countType: rows
//	  destinationKey: stats.tags
//	`))
//	out, err := tabular.NewPipeline(steps).Run(ctx, table)
//
// [Pipeline.Run] validates every step before applying any, then applies them
// in order. The first failure aborts the run and is returned as a
// [*StepError]. Pass [WithLogger] for zerolog step events and [WithTracer]
// to choose the OpenTelemetry tracer used for run and step spans.
//
// # Output
//
// [Write] and [Marshal] render a table in any [Format]. JSON, YAML and JSONL
// emit the row records (or full items with [WithItems]). CSV, TSV, Table,
// Markdown and HTML use [Columns] as header and [Value.Text] as cells. ENV
// writes KEY=value lines per row, List writes the column set, and
// [GoTemplate] executes a text/template once per row.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrOutOfRange]: a row index outside the table
//   - [ErrInvalidOption]: unknown action, navigate type, count type or border
//   - [ErrMalformedTable]: input that does not decode into rows
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrInvalidTemplate]: invalid go-template syntax
package tabular
