// Package view derives presentation state from a session snapshot: which
// groups show an error, what the error says, whether the submit button is
// enabled and which strength class the password bar carries. Nothing here is
// stored; every flag is recomputed from the snapshot so the page can never
// disagree with the engine.
package view
