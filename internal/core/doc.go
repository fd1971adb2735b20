// Package core provides the business logic for merging delimited text tables.
//
// This package is the heart of the merge tool, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Pipeline
//
// A merge runs as a synchronous, single-pass pipeline:
//
//  1. [DetectDelimiter] inspects a byte sample of each file and picks the
//     field delimiter (an explicit option short-circuits detection).
//  2. [EncodingCandidates] turns the requested encoding into an ordered list
//     of encodings to attempt.
//  3. [ReadTable] decodes and parses each file into a [Table], falling back
//     through the candidate encodings.
//  4. [Merge] combines all tables into one according to [MergeOptions].
//  5. [WriteTable] renders the merged table back to delimited-text bytes.
//
// [Service.Merge] wires the stages together and records per-file detection
// results for diagnostic display. Every stage is a pure function of its
// inputs; independent merges can run concurrently without synchronization.
//
// # Error Handling
//
// Each stage returns one of three structured error kinds: [UsageError] for
// invalid configuration or call errors, [SchemaMismatchError] when fast or
// strict merging finds diverging column sequences, and [DecodeError] when a
// file cannot be decoded or structurally parsed. Technical errors are mapped
// to user-friendly messages using [MapError]; each category has a unique
// code for support reference.
//
// The delimiter detector never fails: dialect sniffing failures and
// byte-replacement decoding are designed degradations, not errors.
package core
