// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question to the AI assistant.
//
// Examples:
//   studysync ask "what is an eigenvector?"
//   studysync ask explain the pumping lemma

package cli

import (
	"fmt"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/util"
)

// HandleAsk sends a question to the assistant and prints the answer as
// rendered markdown followed by its sources.
func (a *App) HandleAsk(args Args) error {
	question := joinArgs(args.Parser, 0)
	if question == "" {
		return &UsageError{Command: "ask", Message: "a question is required"}
	}
	if !a.Client.AssistantEnabled() {
		return fmt.Errorf("ask: %w", api.ErrAssistantDisabled)
	}

	a.Logger.Debug("asking assistant", "chars", util.RuneLen(question))
	answer, err := a.Client.Ask(a.Ctx, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	width := GetTerminalWidth()
	fmt.Fprintln(a.Out, a.Markdown.Render(answer.Answer, width))

	if len(answer.Sources) > 0 {
		fmt.Fprintln(a.Out, SectionStyle.Render("Sources"))
		for _, src := range answer.Sources {
			line := fmt.Sprintf("- %s, p. %d", src.Source, src.Page)
			fmt.Fprintln(a.Out, DimStyle.Render(util.TruncateWidth(line, width)))
		}
	}
	return nil
}
