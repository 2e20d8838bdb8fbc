// Package optimizer selects the points-maximizing extension of a committed
// roster under an integer budget and per-category count ceilings.
//
// The search is a 0/1 knapsack over the catalog in its given order, seeded
// with the committed roster (the baseline) at every budget level:
//
//	cell(i, b) = best of
//	  skip: cell(i-1, b)
//	  take: cell(i-1, trunc(b - cost[i])) + points[i]
//	        when cost[i] <= b and count(category[i]) in that team < limit
//
// Take wins only on strictly greater points, so equal-value substitutions
// never churn the answer. Row -1 is the baseline. The answer is cell(N-1, B).
//
// Budget rounding:
//
//	The remaining budget b - cost[i] is truncated to an integer before it is
//	used as a table index. A fractional cost therefore consumes the next whole
//	unit, and the real cost of the added athletes never exceeds B.
//
// Baseline limits:
//
//	Category counts include the baseline. A baseline that already exceeds a
//	limit is kept as is; it only blocks further picks of that category.
//
// Complexity:
//
//	Time   O(N·B)
//	Memory O(N·B) bits of backpointers + O(B·C) for two rolling rows,
//	       where C is the number of configured categories.
//
// Solve performs no mutation; committing the returned athletes is the
// caller's decision.
package optimizer
