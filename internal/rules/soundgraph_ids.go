package rules

// SoundGraphRuleIDs are the rules that exist only in soundgraph builds.
// Configuration may name them in any build.
var SoundGraphRuleIDs = []string{"metasound-author-blank", "no-metasound-source-reference"}
