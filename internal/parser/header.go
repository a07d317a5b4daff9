package parser

// headerMarker normalized form of the canonical column ("PERÍODO") whose
// presence anchors a sheet's tabular layout.
const headerMarker = "periodo"

// headerScanCols how many leading columns of each row are scanned for the
// marker. Real sheets put the header well inside this window.
const headerScanCols = 10

// FindHeaderRow scans rows top to bottom for the first one containing the
// marker column and returns its index. -1 means the sheet has no extractable
// data; callers produce an empty parse, not an error.
func FindHeaderRow(grid [][]string) int {
	for r, row := range grid {
		n := len(row)
		if n > headerScanCols {
			n = headerScanCols
		}
		for c := 0; c < n; c++ {
			if Normalize(row[c]) == headerMarker {
				return r
			}
		}
	}
	return -1
}
