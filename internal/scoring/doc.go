// Package scoring holds the pure core of the selection pipeline: quiz
// evaluation, stable top-K ranking, video score aggregation, shortlist and
// final-selection construction, and progress counting. Nothing in this
// package touches a store, a notifier or a clock; callers pass every input
// in, including timestamps.
package scoring
