// Package paths resolves the filesystem locations ruleranger uses: the XDG
// config and state directories, the project config file, and the mapping
// between descriptor files below a content root and asset paths under a
// mount point.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/state, ~/.cache).
//
// # Content Mapping
//
// With root /work/Content and mount /Game, the descriptor
// /work/Content/UI/WBP_Menu.yaml is the asset /Game/UI/WBP_Menu:
//
//	p, _ := paths.AssetPath("/work/Content", "/Game", "/work/Content/UI/WBP_Menu.yaml")
//	// p == "/Game/UI/WBP_Menu"
//	f, _ := paths.DescriptorPath("/work/Content", "/Game", p, "toml")
//	// f == "/work/Content/UI/WBP_Menu.toml"
package paths
