package scoring

import (
	"sort"
	"strconv"
)

// OrderMap ranks the questions of a survey 1..N by ascending question id and
// returns base-id -> ordinal. Subscale ranges and reverse-coded positions are
// defined against exactly this ordering, so it must stay id-ascending even
// though that is insertion order rather than any semantic order.
func OrderMap(questionIDs []uint) map[string]int {
	ids := make([]uint, len(questionIDs))
	copy(ids, questionIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	order := make(map[string]int, len(ids))
	for i, id := range ids {
		order[strconv.FormatUint(uint64(id), 10)] = i + 1
	}
	return order
}
