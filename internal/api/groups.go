// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/jeranaias/studysync-tui/internal/model"
)

// GroupDTO is the wire form of a group.
type GroupDTO = model.GroupSummary

type createGroupRequest struct {
	Name        string `json:"name"`
	University  string `json:"university"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// ListGroups returns every group. Used when nobody is logged in.
func (c *Client) ListGroups(ctx context.Context) ([]model.GroupSummary, error) {
	if groups, ok := c.cached(cacheKeyAll); ok {
		return groups, nil
	}
	var groups []GroupDTO
	if err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(GroupsPath)}, &groups); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groups = nonNil(groups)
	c.store(cacheKeyAll, groups)
	return groups, nil
}

// MyGroups returns the groups the token's owner belongs to. Not cached.
func (c *Client) MyGroups(ctx context.Context, token string) ([]model.GroupSummary, error) {
	var groups []GroupDTO
	err := c.do(ctx, request{method: http.MethodGet, url: c.endpoint(MyGroupsPath), token: token}, &groups)
	if err != nil {
		return nil, fmt.Errorf("my groups: %w", err)
	}
	return nonNil(groups), nil
}

// SearchGroups finds groups by name or university. The query must already
// be normalized. Backends without a search endpoint (404) are served by
// filtering the full list locally.
func (c *Client) SearchGroups(ctx context.Context, query string) ([]model.GroupSummary, error) {
	key := searchKey(query)
	if groups, ok := c.cached(key); ok {
		return groups, nil
	}

	u := c.endpoint(SearchGroupsPath) + "?" + url.Values{"q": {query}}.Encode()
	var groups []GroupDTO
	err := c.do(ctx, request{method: http.MethodGet, url: u}, &groups)
	if isNotFound(err) {
		c.logger.Debug("search endpoint missing, filtering locally", "query", query)
		all, listErr := c.ListGroups(ctx)
		if listErr != nil {
			return nil, fmt.Errorf("search groups: %w", listErr)
		}
		groups = filterGroups(all, query)
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	groups = nonNil(groups)
	c.store(key, groups)
	return groups, nil
}

// CreateGroup creates a group owned by the token's user. The form must
// already be validated. An empty image path uses the default image.
func (c *Client) CreateGroup(ctx context.Context, token string, form model.CreateGroupForm) (model.GroupSummary, error) {
	image := c.defaultImage
	if form.ImagePath != "" {
		image = filepath.Base(form.ImagePath)
	}

	var created GroupDTO
	err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.endpoint(GroupsPath),
		token:  token,
		body: createGroupRequest{
			Name:        form.Name,
			University:  form.University,
			Description: form.Description,
			ImageURL:    image,
		},
	}, &created)
	if err != nil {
		return model.GroupSummary{}, fmt.Errorf("create group: %w", err)
	}
	c.InvalidateCache()

	// Servers that echo nothing back still get a usable tile.
	if created.Name == "" {
		created.Name = form.Name
		created.University = form.University
		created.Description = form.Description
	}
	if created.ImageURL == "" {
		created.ImageURL = image
	}
	return created, nil
}

func filterGroups(groups []model.GroupSummary, query string) []model.GroupSummary {
	var out []model.GroupSummary
	for _, g := range groups {
		if g.Matches(query) {
			out = append(out, g)
		}
	}
	return out
}

func nonNil(groups []GroupDTO) []GroupDTO {
	if groups == nil {
		return []GroupDTO{}
	}
	return groups
}
