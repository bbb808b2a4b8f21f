package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Filename .StartLine .StartColumn .MaxLineNumWidth -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .Padding -}}
{{underline .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines -}}
{{suggestion .Suggestion .Padding -}}
{{note .Note -}}
`
}
