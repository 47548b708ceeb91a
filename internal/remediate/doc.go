// Package remediate applies rule fixes to assets.
//
// Every fix runs inside a host edit scope on a single coordinating goroutine,
// so host mutation is serialized no matter how many session workers are
// checking assets. A fix that returns an error, panics or fails to commit is
// rolled back and the asset is left as it was.
package remediate
