package parallel

// Partition maps a worker id onto a contiguous half-open row range
// [start, end). Every worker except the last receives exactly count/total
// rows; the last additionally receives the remainder, so the union of all
// ranges covers [0, count) with no gaps and no overlaps. When count < total
// some workers receive an empty range.
func Partition(count, total, id int) (start, end int) {
	gap := count / total
	start = id * gap
	end = start + gap
	if id == total-1 {
		end += count % total
	}
	return start, end
}
