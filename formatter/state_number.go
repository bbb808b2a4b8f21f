package formatter

// StateNumberFormatter adds the companion-file hint under the standard
// report body.
type StateNumberFormatter struct{}

func (f *StateNumberFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Filename .StartLine .StartColumn .MaxLineNumWidth -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .Padding -}}
{{underline .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines -}}
{{suggestion .Suggestion .Padding -}}
note: the constant lives in the type's companion _state.go file
`
}
