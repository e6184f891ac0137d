package recommend

import (
	"sort"

	"github.com/kailas-cloud/huematch/internal/domain/recommendation"
)

// TopK is the number of products a recommendation returns.
const TopK = 3

// rank returns at most k products ordered by descending score.
// Ties keep their input (load) order.
func rank(scored []recommendation.Scored, k int) []recommendation.Scored {
	ranked := make([]recommendation.Scored, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
