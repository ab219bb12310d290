// Package store defines the typed, per-process state that lifecycle hooks
// read and write.
//
// Every process kind (builder, executor, trainer, parameter server) owns one
// store struct. Fields the framework itself understands are plain struct
// fields, so hook code gets compile-time checked access. Values the
// framework does not model travel through the embedded Base using a typed
// Key:
//
//	var advantageKey = store.NewKey[func([]float64) []float64]("advantage_fn")
//
//	store.Set(trainerStore, advantageKey, computeAdvantage)
//	fn, ok := store.Get(trainerStore, advantageKey)
package store
