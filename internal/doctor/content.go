package doctor

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
)

// skipDir reports whether a directory below the content root is ignored,
// matching the file host.
func skipDir(root, p string, d fs.DirEntry) bool {
	return p != root && strings.HasPrefix(d.Name(), ".")
}

// statRoot returns a failing result when root is not a readable directory.
func statRoot(name, category, root string) *CheckResult {
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &CheckResult{
			Name:     name,
			Category: category,
			Status:   SeverityError,
			Message:  fmt.Sprintf("content root %s does not exist", root),
			FixHint:  "set content.root in the config file",
		}
	case err != nil:
		return &CheckResult{
			Name:     name,
			Category: category,
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot stat content root: %v", err),
		}
	case !info.IsDir():
		return &CheckResult{
			Name:     name,
			Category: category,
			Status:   SeverityError,
			Message:  fmt.Sprintf("content root %s is not a directory", root),
		}
	}
	return nil
}

// ContentPermissionCheck verifies fixes can be committed: the content root,
// its folders and descriptors must be writable and not world-writable.
type ContentPermissionCheck struct {
	PermissionFixer
	root string
}

var (
	_ Check = (*ContentPermissionCheck)(nil)
	_ Fixer = (*ContentPermissionCheck)(nil)
)

// NewContentPermissionCheck creates a new permission check for root.
func NewContentPermissionCheck(root string) *ContentPermissionCheck {
	return &ContentPermissionCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *ContentPermissionCheck) Name() string {
	return "content-permissions"
}

// Category returns the grouping for this check.
func (c *ContentPermissionCheck) Category() string {
	return "content"
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fixable     bool
	FixHint     string
}

// Run executes the permission check.
func (c *ContentPermissionCheck) Run() *CheckResult {
	c.setIssues(nil)
	if res := statRoot(c.Name(), c.Category(), c.root); res != nil {
		return res
	}

	var issues []pathIssue
	var checked int

	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			issues = append(issues, pathIssue{
				Path:     p,
				Type:     "directory",
				Problem:  fmt.Sprintf("cannot read: %v", err),
				Severity: SeverityError,
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDir(c.root, p, d) {
				return filepath.SkipDir
			}
			checked++
			issues = append(issues, c.checkDirectory(p)...)
			return nil
		}
		if _, ok := host.FormatOf(p); !ok {
			return nil
		}
		checked++
		issues = append(issues, c.checkFile(p)...)
		return nil
	})
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("walking content root: %v", err),
		}
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// checkFile validates a descriptor's permissions.
func (c *ContentPermissionCheck) checkFile(path string) []pathIssue {
	info, err := os.Stat(path)
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}
	}

	// Unix permission bits do not apply on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}

	var issues []pathIssue
	perm := info.Mode().Perm()

	if perm&0o200 == 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "file",
			Problem:     "descriptor is read-only, fixes cannot be committed",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod u+w " + path,
		})
	}
	if perm&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "file",
			Problem:     "descriptor is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod o-w " + path,
		})
	}
	return issues
}

// checkDirectory validates a content folder.
func (c *ContentPermissionCheck) checkDirectory(path string) []pathIssue {
	info, err := os.Stat(path)
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue

	writable, err := c.isDirectoryWritable(path)
	if err != nil || !writable {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "directory",
			Problem:     "directory is not writable, renames cannot be committed",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod u+wx " + path,
		})
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Type:        "directory",
			Problem:     "directory is world-writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod o-w " + path,
		})
	}

	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func (c *ContentPermissionCheck) isDirectoryWritable(path string) (bool, error) {
	tmpFile, err := os.CreateTemp(path, ".ruleranger-doctor-*")
	if err != nil {
		return false, err
	}

	tmpPath := tmpFile.Name()
	tmpFile.Close()
	os.Remove(tmpPath)

	return true, nil
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *ContentPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d content paths have valid permissions", checked),
		}
	}

	highestSeverity := SeverityWarning
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			highestSeverity = SeverityError
			break
		}
	}

	issueDetails := make([]map[string]any, 0, len(issues))
	var fixHints []string
	fixable := false
	for _, issue := range issues {
		issueMap := map[string]any{
			"path":     issue.Path,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			issueMap["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			issueMap["fix_hint"] = issue.FixHint
		}
		issueDetails = append(issueDetails, issueMap)

		if issue.Fixable {
			fixable = true
			if issue.FixHint != "" && !slices.Contains(fixHints, issue.FixHint) {
				fixHints = append(fixHints, issue.FixHint)
			}
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   highestSeverity,
		Message:  fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issue_count":   len(issues),
			"issues":        issueDetails,
		},
		Fixable: fixable,
	}
	if len(fixHints) > 0 {
		result.FixHint = strings.Join(fixHints, "; ")
	}
	return result
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// DescriptorSyntaxCheck parses every asset descriptor below the content
// root and reports the ones the file host would skip.
type DescriptorSyntaxCheck struct {
	root string
}

var _ Check = (*DescriptorSyntaxCheck)(nil)

// NewDescriptorSyntaxCheck creates a new DescriptorSyntaxCheck instance.
func NewDescriptorSyntaxCheck(root string) *DescriptorSyntaxCheck {
	return &DescriptorSyntaxCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *DescriptorSyntaxCheck) Name() string {
	return "descriptor-syntax"
}

// Category returns the grouping for this check.
func (c *DescriptorSyntaxCheck) Category() string {
	return "content"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation check.
func (c *DescriptorSyntaxCheck) Run() *CheckResult {
	if res := statRoot(c.Name(), c.Category(), c.root); res != nil {
		return res
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Details:  make(map[string]any),
	}

	var fileResults []syntaxFileResult
	var errorCount, passCount int

	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(c.root, p, d) {
				return filepath.SkipDir
			}
			return nil
		}
		format, ok := host.FormatOf(p)
		if !ok {
			return nil
		}
		fr := c.validateFile(p, format)
		switch fr.Status {
		case "pass":
			passCount++
		case "error":
			errorCount++
			fileResults = append(fileResults, fr)
		}
		return nil
	})
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("walking content root: %v", err)
		return result
	}

	result.Details["files"] = fileResults
	result.Details["checked"] = passCount + errorCount
	result.Details["passed"] = passCount
	result.Details["errors"] = errorCount

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d asset descriptor(s) cannot be parsed", errorCount)
		result.FixHint = "review the error details and fix each descriptor; unparsable assets are not validated"
	case passCount > 0:
		result.Message = fmt.Sprintf("%d asset descriptor(s) parsed successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no asset descriptors found"
	}

	return result
}

// validateFile checks if a descriptor parses into an asset.
func (c *DescriptorSyntaxCheck) validateFile(filePath string, format host.Format) syntaxFileResult {
	fr := syntaxFileResult{Path: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fr.Status = "error"
		if errors.Is(err, os.ErrPermission) {
			fr.Message = fmt.Sprintf("permission denied: %v", err)
		} else {
			fr.Message = fmt.Sprintf("read error: %v", err)
		}
		return fr
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		fr.Status = "error"
		fr.Message = "descriptor is empty"
		return fr
	}

	if _, err := host.Decode(format, data); err != nil {
		fr.Status = "error"
		switch format {
		case host.FormatJSON:
			fr.Message = formatJSONError(err, data)
		case host.FormatTOML:
			fr.Message = formatTOMLError(err)
		default:
			fr.Message = formatYAMLError(err)
		}
		return fr
	}

	fr.Status = "pass"
	return fr
}

// formatJSONError extracts position information from JSON syntax errors.
func formatJSONError(err error, data []byte) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(data, int(typeErr.Offset))
		return fmt.Sprintf("JSON type error at line %d, column %d: %s", line, col, typeErr.Error())
	}

	return fmt.Sprintf("invalid descriptor: %v", err)
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s",
			row, col, decodeErr.Error())
	}

	return fmt.Sprintf("invalid descriptor: %v", err)
}

// formatYAMLError reports yaml.v3 errors, which carry their own line numbers.
func formatYAMLError(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return "YAML type error: " + strings.Join(typeErr.Errors, "; ")
	}

	cause := errors.UnwrapAll(err).Error()
	if rest, ok := strings.CutPrefix(cause, "yaml: "); ok {
		return "YAML syntax error: " + rest
	}
	return fmt.Sprintf("invalid descriptor: %v", err)
}

// offsetToLineCol converts a byte offset to line and column numbers.
// Lines and columns are 1-indexed.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0

	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col = offset - lineStart + 1
	return line, col
}

// EmptyFolderCheck finds content folders that contain no files at any
// depth. Such folders are left behind by renames and moves.
type EmptyFolderCheck struct {
	EmptyFolderFixer
	root string
}

var (
	_ Check = (*EmptyFolderCheck)(nil)
	_ Fixer = (*EmptyFolderCheck)(nil)
)

// NewEmptyFolderCheck creates a new empty folder check for root.
func NewEmptyFolderCheck(root string) *EmptyFolderCheck {
	return &EmptyFolderCheck{root: root}
}

// Name returns the unique identifier for this check.
func (c *EmptyFolderCheck) Name() string {
	return "empty-content-folders"
}

// Category returns the grouping for this check.
func (c *EmptyFolderCheck) Category() string {
	return "content"
}

// Run collects the outermost empty folders below the content root.
func (c *EmptyFolderCheck) Run() *CheckResult {
	c.dirs = nil
	if res := statRoot(c.Name(), c.Category(), c.root); res != nil {
		return res
	}

	err := filepath.WalkDir(c.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == c.root {
			return nil
		}
		if skipDir(c.root, p, d) {
			return filepath.SkipDir
		}
		empty, err := isEmptyTree(p)
		if err != nil {
			return err
		}
		if empty {
			c.dirs = append(c.dirs, p)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		c.dirs = nil
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("walking content root: %v", err),
		}
	}

	if len(c.dirs) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "no empty content folders",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  fmt.Sprintf("found %d empty content folder(s)", len(c.dirs)),
		Details:  map[string]any{"folders": slices.Clone(c.dirs)},
		Fixable:  true,
		FixHint:  "run: ruleranger doctor --fix",
	}
}

// isEmptyTree reports whether dir holds no files, only empty folders.
func isEmptyTree(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			return false, nil
		}
		empty, err := isEmptyTree(filepath.Join(dir, e.Name()))
		if err != nil || !empty {
			return false, err
		}
	}
	return true, nil
}
