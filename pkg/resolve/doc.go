// Package resolve drives the keeper selection over all duplicate clusters.
//
// A Traversal walks the sorted clusters once. For every position it first
// asks precedent inference; when that yields nothing it asks a ChoiceSource,
// which is either the interactive prompt, the no-prompt source that always
// keeps the first member, or a scripted source in tests. The step-back
// choice rewinds to an earlier prompted position and clears every choice
// made since, so later inferences are recomputed on the way forward again.
//
// All mutable session data lives in State, which is owned by one Traversal.
package resolve
