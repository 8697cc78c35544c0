// Package catg parses, edits, and rewrites RORB catchment (.catg) files.
//
// A catchment file is split on its section markers (C #NODES, C #REACHES,
// C #STORAGES, C #INFLOW/OUTFLOW, C END RORB_GE) into typed node, reach, and
// storage records plus verbatim raw-line regions. Only node and reach print
// flags and node print locations are editable; the writer patches those at
// exact character positions so every untouched byte of the file survives a
// parse/write round trip.
package catg
