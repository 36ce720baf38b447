// Package export writes registry records in the formats used for
// diagnostics and migration.
//
// XML output uses the mime map schema and can be loaded again by the
// server. JSON and YAML wrap the records in a Document. SQLite output
// normalizes records into three tables:
//
//	mime_types       one row per record
//	file_extensions  extensions in record order
//	content_types    content types in record order
//
// Use ToFile for every format, or Write for the streamable ones:
//
//	err := export.Write(os.Stdout, export.FormatYAML, report.Source, reg.Records())
package export
