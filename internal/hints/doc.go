// Package hints renders the transient hint overlays for mnemonic
// navigation: one label per binding, positioned just above its node in page
// coordinates, fading in on render and out on clear. Each render retires
// the previous batch and builds a fresh one; hints are never reused.
package hints
