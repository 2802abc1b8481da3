// Package cli implements the iwctl command-line interface.
//
// Every command opens a workspace from the configuration: the domain
// catalog plus the record source, either the built-in samples or a log
// store named by store.dsn or --db.
//
//	iwctl views                       - List the views and their record counts
//	iwctl show <view>                 - Print a view with summary and table
//	iwctl summary <view>              - Print only the summary statistics
//	iwctl import <file>               - Load an agent log (or CSV with --domain)
//	iwctl export <view> --out <file>  - Write a view as CSV
//	iwctl browse [view]               - Interactive browser
//	iwctl init                        - Write a default .insiderwatch.yaml
//
// Global flags (--config, --db, --driver) are defined on the root command.
// The view flags (--search, --filter, --sort, --desc) are shared by show
// and export.
package cli
