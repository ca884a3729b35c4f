package aggregate

import (
	"sort"
	"strconv"
	"strings"
)

// coreKeySeparator joins the three normalized item ids of a core key.
const coreKeySeparator = "_"

// CoreBuildKey reduces a chronological buy-event list to the canonical
// identity of the first three completed items: boots collapse to
// BootsSentinel, duplicates and items missing from the final inventory
// (sold before game end) are skipped, and the result is sorted so that buy
// order does not fragment otherwise identical builds. ok is false unless
// exactly three distinct completed items were found.
func CoreBuildKey(buyOrder []int, finalItems [6]int) (string, bool) {
	final := make(map[int]bool, len(finalItems))
	for _, id := range finalItems {
		if id == 0 {
			continue
		}
		final[normalizeItem(id)] = true
	}

	core := make([]int, 0, 3)
	seen := make(map[int]bool, 3)
	for _, id := range buyOrder {
		if !IsCompletedItem(id) {
			continue
		}
		norm := normalizeItem(id)
		if !final[norm] || seen[norm] {
			continue
		}
		seen[norm] = true
		core = append(core, norm)
		if len(core) == 3 {
			break
		}
	}

	if len(core) != 3 {
		return "", false
	}

	sort.Ints(core)
	parts := make([]string, len(core))
	for i, id := range core {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, coreKeySeparator), true
}

func normalizeItem(id int) int {
	if IsFinishedBoots(id) {
		return BootsSentinel
	}
	return id
}
