// Package main provides mimectl, a command-line tool for mime map files.
//
// Usage:
//
//	mimectl [command] [flags]
//
// Commands:
//
//	lookup <ext>        Show the record for a file extension
//	type <type>         Show the record for a content type
//	category [ext]      Print the category of an extension
//	list                List every record, sized to the terminal
//	extensions          List every extension key and its owning type
//	validate            Load the map strictly and report malformed entries
//	export              Write the registry as xml, json, yaml or sqlite
//
// Global flags:
//
//	--map string        Mime map path (env: MIME_MAP_XML)
//	--strict            Fail when the map cannot be read (env: MIMECTL_STRICT)
//	--no-fallback       Skip the built-in web types (env: MIMECTL_NO_FALLBACK)
//	--log-level string  Log level written to stderr (default "warn")
//
// validate exits with status 1 when any entry was skipped, which makes it
// suitable as a CI check for hand-edited mime maps.
package main
