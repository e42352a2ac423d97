// Package raw reconstructs word fragments into complete words using a PDF
// page's raw content-stream text as ground truth, before any geometric
// merging happens. See [NewReconstructor] and [Reconstructor.Run].
package raw
