package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	tt "github.com/smeltwork/smelt/internal/types"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// SourceCode stores the lines of one source unit for snippet rendering.
type SourceCode struct {
	Lines []string
}

// FromBytes splits raw source into lines.
func FromBytes(src []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(src), "\n")}
}

// issueFormatter is the interface that wraps the IssueTemplate method.
// Implementations are responsible for formatting specific types of issues.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter returns the formatter for the given rule, falling
// back to the general formatter.
func getIssueFormatter(rule string) issueFormatter {
	switch rule {
	case "magic-state-number":
		return &StateNumberFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// Generate formats a slice of issues into a human-readable report.
func Generate(issues []tt.Issue, sources map[string]*SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		snippet, ok := sources[issue.Filename]
		if !ok {
			snippet = &SourceCode{}
		}
		builder.WriteString(buildIssue(issue, snippet, getIssueFormatter(issue.Rule)))
	}
	return builder.String()
}

// IssueData is the template payload for one issue.
type IssueData struct {
	Severity        string
	Category        string
	Rule            string
	Filename        string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Padding         string
	Message         string
	Suggestion      string
	Note            string
	SnippetLines    []string
}

func buildIssue(issue tt.Issue, snippet *SourceCode, formatter issueFormatter) string {
	maxLineNumWidth := len(fmt.Sprintf("%d", issue.End.Line))
	data := IssueData{
		Severity:        issue.Severity.String(),
		Category:        issue.Category,
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		StartLine:       issue.Start.Line,
		StartColumn:     issue.Start.Column,
		EndLine:         issue.End.Line,
		EndColumn:       issue.End.Column,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         strings.Repeat(" ", maxLineNumWidth+1),
		Message:         issue.Message,
		Suggestion:      issue.Suggestion,
		Note:            issue.Note,
		SnippetLines:    snippet.Lines,
	}

	funcMap := template.FuncMap{
		"header":     header,
		"snippet":    codeSnippet,
		"underline":  underlineAndMessage,
		"suggestion": suggestion,
		"note":       note,
	}

	tmpl := template.Must(template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate()))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// template helpers

func header(rule, severity, filename string, startLine, startColumn, maxLineNumWidth int) string {
	var out string
	switch severity {
	case "error":
		out = errorStyle.Sprint("error: ")
	case "warning":
		out = warningStyle.Sprint("warning: ")
	default:
		out = messageStyle.Sprint("info: ")
	}
	out += ruleStyle.Sprintf("%s\n", rule)
	out += lineStyle.Sprintf("%s--> ", strings.Repeat(" ", maxLineNumWidth))
	out += fileStyle.Sprintf("%s:%d:%d\n", filename, startLine, startColumn)
	return out
}

func codeSnippet(snippetLines []string, startLine, endLine, maxLineNumWidth int, padding string) string {
	var out string
	out = lineStyle.Sprintf("%s|\n", padding)
	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}
		out += lineStyle.Sprintf("%*d | ", maxLineNumWidth, i)
		out += fmt.Sprintf("%s\n", snippetLines[i-1])
	}
	return out
}

func underlineAndMessage(message, padding string, startLine, endLine, startColumn, endColumn int, snippetLines []string) string {
	out := lineStyle.Sprintf("%s| ", padding)
	if startLine != endLine || startLine-1 >= len(snippetLines) || startColumn < 1 {
		return out + messageStyle.Sprintf("%s\n", message)
	}
	width := endColumn - startColumn
	if width < 1 {
		width = 1
	}
	out += strings.Repeat(" ", startColumn-1)
	out += messageStyle.Sprint(strings.Repeat("^", width))
	out += messageStyle.Sprintf(" %s\n", message)
	return out
}

func suggestion(text, padding string) string {
	if text == "" {
		return ""
	}
	return suggestionStyle.Sprintf("%ssuggestion: ", padding) + fmt.Sprintf("%s\n", text)
}

func note(text string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("note: %s\n", text)
}
