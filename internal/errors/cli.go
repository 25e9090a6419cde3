// internal/errors/cli.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net"
	"strings"

	"github.com/valpere/audiotekameta/internal/config"
)

// Exit codes used by the command-line tool.
const (
	ExitGeneral      = 1
	ExitConfig       = 2
	ExitNetwork      = 3
	ExitParse        = 4
	ExitValidation   = 6
	ExitUnauthorized = 8
)

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch KindOf(err) {
	case KindValidation:
		return ExitValidation
	case KindUnauthorized:
		return ExitUnauthorized
	case KindSearch, KindEnrichment:
		return ExitNetwork
	case KindFieldParse:
		return ExitParse
	}

	var verrs config.ValidationErrors
	var netErr net.Error
	errStr := strings.ToLower(err.Error())
	switch {
	case stderrors.As(err, &verrs), strings.Contains(errStr, "config"), strings.Contains(errStr, "yaml"):
		return ExitConfig
	case stderrors.As(err, &netErr), strings.Contains(errStr, "connection"), strings.Contains(errStr, "no such host"):
		return ExitNetwork
	default:
		return ExitGeneral
	}
}

// Describe turns err into a short title, an explanation and suggestions
// for an operator at a terminal.
func Describe(err error) (title, message string, suggestions []string) {
	if err == nil {
		return "", "", nil
	}

	switch ExitCode(err) {
	case ExitValidation:
		return "Invalid Request", UserMessage(err), nil
	case ExitConfig:
		return "Configuration Error",
			"The configuration could not be loaded.",
			[]string{
				"Check YAML indentation (use spaces, not tabs)",
				"catalog.language must be pl or cz",
				"Unset LANGUAGE if your shell sets it for translations",
			}
	case ExitNetwork:
		return "Catalog Unreachable",
			"The catalog could not be fetched.",
			[]string{
				"Check your internet connection",
				"Increase fetch.timeout in the configuration",
			}
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return "Timeout",
			"The operation timed out.",
			[]string{"Increase pipeline.request_timeout in the configuration"}
	}
	return "Unexpected Error", "An unexpected error occurred.", nil
}

// FormatForCLI renders err for stderr. verbose adds the underlying error.
func FormatForCLI(err error, verbose bool) string {
	title, message, suggestions := Describe(err)

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n%s\n", title, message)
	if verbose {
		fmt.Fprintf(&b, "\nTechnical details: %v\n", err)
	}
	if len(suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	return b.String()
}
