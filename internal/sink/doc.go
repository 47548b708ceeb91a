// Package sink publishes validation results to the host's collaborators:
// a message log that lists entries grouped by asset, and a data-validation
// target that records a Valid, Invalid or NotValidated verdict per asset.
package sink
