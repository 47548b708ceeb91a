// Package asset models host-engine content assets and the collaborator
// interfaces the rule engine consumes to enumerate, load and edit them.
//
// Assets are classified into a closed set of kinds ([Kind]) and may carry
// additional capability tags ([Capability]) so that, for example, a widget
// blueprint is both a Blueprint and a widget. Hosts ([Host]) hand out private
// copies on load and mutate only through an [EditScope], which either commits
// the working copy or discards it.
package asset
