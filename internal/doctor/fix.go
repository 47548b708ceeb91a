package doctor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	// Returns a slice of FixResult indicating what was fixed or why it couldn't be fixed.
	// Must be called after Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// MarshalJSON encodes Error as its message.
func (r FixResult) MarshalJSON() ([]byte, error) {
	type plain FixResult
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(r)}
	if r.Error != nil {
		out.Error = r.Error.Error()
	}
	return json.Marshal(out)
}

// PermissionFixer makes content owner-writable and not world-writable,
// keeping the other permission bits. It is embedded in
// ContentPermissionCheck.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// Fix attempts to fix all fixable permission issues.
// Returns a FixResult for each fixable issue.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	seen := make(map[string]bool)
	for _, issue := range f.issues {
		if !issue.Fixable || seen[issue.Path] {
			continue
		}
		seen[issue.Path] = true
		results = append(results, f.fixIssue(issue))
	}
	return results
}

// repairedPerm returns perm with the owner write bit (and owner search bit
// for directories) set and the world write bit cleared.
func repairedPerm(perm os.FileMode, dir bool) os.FileMode {
	perm |= 0o200
	if dir {
		perm |= 0o100
	}
	return perm &^ 0o002
}

// fixIssue attempts to fix a single permission issue.
func (f *PermissionFixer) fixIssue(issue pathIssue) FixResult {
	result := FixResult{Path: issue.Path}

	var dir bool
	switch issue.Type {
	case "file":
	case "directory":
		dir = true
	default:
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	info, err := os.Stat(issue.Path)
	if err != nil {
		result.Description = "cannot stat: " + err.Error()
		result.Error = errors.Wrapf(err, "stat %s", issue.Path)
		return result
	}
	if info.IsDir() != dir {
		result.Description = fmt.Sprintf("is no longer a %s", issue.Type)
		result.Error = errors.Newf("%s changed type", issue.Path)
		return result
	}

	target := repairedPerm(info.Mode().Perm(), dir)
	if err := os.Chmod(issue.Path, target); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", target, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", target, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", target)
	return result
}

// setIssues stores the issues found by the check for later fixing.
func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			count++
		}
	}
	return count
}

// EmptyFolderFixer removes content folders that hold no files. It is
// embedded in EmptyFolderCheck.
type EmptyFolderFixer struct {
	dirs []string
}

// CanFix returns true if empty folders were found.
func (f *EmptyFolderFixer) CanFix() bool {
	return len(f.dirs) > 0
}

// Fix removes every empty folder found by Run. A folder that gained files
// since Run is left alone.
func (f *EmptyFolderFixer) Fix() []FixResult {
	results := make([]FixResult, 0, len(f.dirs))
	for _, dir := range f.dirs {
		result := FixResult{Path: dir}

		empty, err := isEmptyTree(dir)
		switch {
		case err != nil:
			result.Description = fmt.Sprintf("cannot read folder: %v", err)
			result.Error = errors.Wrapf(err, "reading %s", dir)
		case !empty:
			result.Description = "folder is no longer empty"
		default:
			if err := os.RemoveAll(dir); err != nil {
				result.Description = fmt.Sprintf("failed to remove: %v", err)
				result.Error = errors.Wrapf(err, "removing %s", dir)
			} else {
				result.Fixed = true
				result.Description = "removed empty folder"
			}
		}
		results = append(results, result)
	}
	return results
}
