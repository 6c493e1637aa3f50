package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryLoop:
		return g.generateLoopSuggestions(affectedPath)
	case CategoryNotDirectory:
		return g.generateNotDirectorySuggestions(affectedPath)
	case CategoryConnection:
		return g.generateConnectionSuggestions(affectedPath)
	case CategoryIO:
		return g.generateIOSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions(_ string) []string {
	return []string{
		"Check that the host is reachable and runs an SSH server",
		"Make sure your key is loaded in ssh-agent or stored unencrypted in ~/.ssh",
		"If the host key changed, update ~/.ssh/known_hosts",
	}
}

func (g *suggestionGenerator) generateIOSuggestions(_ string) []string {
	return []string{
		"Try the scan again - this may be a transient I/O error",
		"If the tree is on a network mount, check that the mount is healthy",
		"Check system logs for hardware issues",
	}
}

func (g *suggestionGenerator) generateLoopSuggestions(path string) []string {
	suggestions := []string{
		"A symbolic link points back to one of its own parents",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the link with 'ls -la %s'", path))
	}

	return append(suggestions, "Exclude the directory containing the link with --exclude")
}

func (g *suggestionGenerator) generateNotDirectorySuggestions(path string) []string {
	if path == "" {
		return []string{"Pass a directory as the scan root, not a file"}
	}

	return []string{
		"Pass a directory as the scan root, not a file",
		"To scan the folder holding this file, use its parent: " + parentOf(path),
	}
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
	}

	return append(suggestions, "Files removed while the scan was running are reported this way and can be ignored")
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read and execute permission on the directories being scanned",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the affected path")
	}

	return append(suggestions,
		"Exclude the directory with --exclude if it does not need scanning",
		"Try running with appropriate permissions or as a privileged user",
	)
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}

// parentOf trims the last path element; works for both / and \ separators.
func parentOf(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[:i]
		}
	}

	return "."
}
