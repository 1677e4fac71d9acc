// Package legality implements the Legality Annotator pass (spec §4.12):
// for each loop, every dependence edge saturated at that loop's level is
// classified as an unordered reduction (the linked store/load pair was
// marked reassociable by the reduction package), an ordered reduction
// (carried but reassociable only with a fixed accumulation order), or a
// plain carried dependence (which flips the loop's reorderable flag to
// false). A loop's legality AND-combines with its parent's, mirroring
// scheduler.Result's "`&` is min" combinator.
package legality
