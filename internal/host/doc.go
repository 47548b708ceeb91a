// Package host provides implementations of [asset.Host].
//
// [Memory] keeps assets in process and is what tests and embedders use.
// [Filesystem] layers descriptor files on top of Memory: every .yaml, .yml,
// .toml or .json file below a content root is one asset, and committed edits
// are written back atomically in the file's original format.
package host
