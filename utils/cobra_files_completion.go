package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// CompleteFilesByExtension builds a cobra completion function offering files
// matching the given extensions, optionally including rotated variants such as
// gc.log.0 or gc.log.1.gz.
func CompleteFilesByExtension(extensions []string, includeRotated bool) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		dir := filepath.Dir(toComplete)
		prefix := filepath.Base(toComplete)

		// If no path separator, we're completing in current directory
		if !strings.Contains(toComplete, "/") {
			dir = "."
			prefix = toComplete
		}

		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var suggestions []string
		for _, file := range files {
			name := file.Name()

			if strings.HasPrefix(name, ".") || !strings.HasPrefix(name, prefix) {
				continue
			}

			suggestion := name
			if dir != "." {
				suggestion = filepath.Join(dir, name)
			}

			if file.IsDir() {
				suggestions = append(suggestions, suggestion+"/")
			} else if isValidFileExtension(name, extensions, includeRotated) {
				suggestions = append(suggestions, suggestion)
			}
		}

		slices.Sort(suggestions)
		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}

func isValidFileExtension(filename string, extensions []string, includeRotated bool) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}

		// Rotated files: .ext.0, .ext.1, optionally re-compressed as .ext.0.gz
		if includeRotated {
			pattern := regexp.QuoteMeta(ext) + `\.\d+(\.gz)?$`
			if matched, _ := regexp.MatchString(pattern, filename); matched {
				return true
			}
		}
	}
	return false
}
