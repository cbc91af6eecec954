package config

import (
	"flag"
)

const defaultIndexOut = "text_to_sql_index.gob"

// parses CLI flags for the build subcommand
func ParseBuildFlags(args []string, examplesPath string) BuildFlags {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	path := fs.String("path", examplesPath, "path to the examples file (.csv, .parquet, .json)")
	out := fs.String("out", defaultIndexOut, "file the index blob is written to")
	useS3 := fs.Bool("s3", false, "write the index blob to S3 instead of a local file")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return BuildFlags{Path: *path, Out: *out, UseS3: *useS3}
}

// parses CLI flags for the export subcommand
func ParseExportFlags(args []string, examplesPath string) ExportFlags {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	path := fs.String("path", examplesPath, "path to the examples file (.csv, .parquet, .json)")
	clearFlag := fs.Bool("clear", false, "clear existing examples before exporting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return ExportFlags{Path: *path, Clear: *clearFlag}
}
