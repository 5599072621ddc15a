// Package artifacts holds the trained, read-only objects the pipeline runs on:
// two label encoders, two one-hot encoders, a standard scaler and a regression
// model, plus the manifest that ties one exported set of them together.
//
// All types are decoded once and never mutated afterwards, so a *Set may be
// shared by any number of goroutines.
package artifacts
