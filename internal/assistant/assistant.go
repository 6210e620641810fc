// Package assistant produces the chat assistant's reply for a symptom
// description: catalog analysis first, keyword replies when nothing matches.
package assistant

import "github.com/healix-app/healix-be/internal/diagnosis"

// Assistant is stateless apart from its read-only analyzer
type Assistant struct {
	analyzer *diagnosis.Analyzer
}

// New creates an assistant backed by the given analyzer
func New(analyzer *diagnosis.Analyzer) *Assistant {
	return &Assistant{analyzer: analyzer}
}

// Respond analyzes the message and composes the reply
func (a *Assistant) Respond(message string) Response {
	return Compose(a.analyzer.Analyze(message), message)
}

// RespondDefault skips the catalog and answers from keyword rules only
func (a *Assistant) RespondDefault(message string) Response {
	return ComposeDefault(message)
}
