// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jeranaias/studysync-tui/internal/model"
)

// ErrAssistantDisabled is returned by Ask when no assistant URL is set.
var ErrAssistantDisabled = errors.New("assistant URL not configured")

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer          string           `json:"answer"`
	SourceDocuments []sourceDocument `json:"source_documents"`
	Error           string           `json:"error"`
}

type sourceDocument struct {
	PageContent string `json:"page_content"`
	Metadata    struct {
		Source     string `json:"source"`
		PageNumber int    `json:"page_number"`
	} `json:"metadata"`
}

// AssistantEnabled reports whether an assistant URL is configured.
func (c *Client) AssistantEnabled() bool {
	return c.assistantURL != ""
}

// Ask sends a question to the AI assistant.
func (c *Client) Ask(ctx context.Context, question string) (model.AssistantAnswer, error) {
	if !c.AssistantEnabled() {
		return model.AssistantAnswer{}, ErrAssistantDisabled
	}

	var resp askResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.assistantURL + AssistantPath,
		body:   askRequest{Question: question},
	}, &resp)
	if err != nil {
		return model.AssistantAnswer{}, fmt.Errorf("ask: %w", err)
	}
	// The service reports failures in-band with a 200.
	if resp.Error != "" {
		return model.AssistantAnswer{}, fmt.Errorf("ask: %w", &APIError{Status: http.StatusOK, Message: resp.Error})
	}

	answer := model.AssistantAnswer{Answer: resp.Answer}
	for _, doc := range resp.SourceDocuments {
		answer.Sources = append(answer.Sources, model.SourceRef{
			Source:  doc.Metadata.Source,
			Page:    doc.Metadata.PageNumber,
			Excerpt: doc.PageContent,
		})
	}
	return answer, nil
}
