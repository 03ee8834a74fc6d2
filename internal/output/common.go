// internal/output/common.go
package output

// TSVHeader is the canonical header row for the sequence listing.
const TSVHeader = "description\tbases\tknown_bases\tline_width\tcomplete"

// DefaultPrecision is the number of decimals printed for route costs.
const DefaultPrecision = 4
