// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "strings"

// Route names.
const (
	RouteHome     = "/"
	RouteGroup    = "/group/:id"
	RouteLogin    = "/login"
	RouteRegister = "/register"
)

// Match resolves a path to its route pattern and parameters. Unknown paths
// resolve to the home route.
func Match(path string) (route string, params map[string]string) {
	path = "/" + strings.Trim(path, "/")

	switch path {
	case RouteHome, RouteLogin, RouteRegister:
		return path, nil
	}

	if rest, ok := strings.CutPrefix(path, "/group/"); ok && rest != "" && !strings.Contains(rest, "/") {
		return RouteGroup, map[string]string{"id": rest}
	}
	return RouteHome, nil
}
