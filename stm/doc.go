// Package stm parses, edits, and rewrites RORB storm (.stm) files.
//
// A storm file has no named section markers; its grammar is positional and
// self-describing. The storm-parameters line is read first, and its burst and
// pluviograph counts drive how many of each later block to expect. Parsing
// produces an ordered list of category-tagged sections that each remember
// their own delimiter and terminator convention, so the writer can reproduce
// every untouched line byte for byte. Mutation operations keep the
// storm-parameter counts, the two time-range sections, and the paired
// sub-area rainfall / pluviograph reference blocks mutually consistent.
package stm
