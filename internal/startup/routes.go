package startup

import (
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"mime-registry/internal/logging"
)

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// GetRoutes extracts all registered routes from a mux.Router. Routes
// without a method matcher are reported with method "*".
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tmpl, err := route.GetPathTemplate()
		if err != nil {
			return err
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}
		for _, m := range methods {
			routes = append(routes, RouteInfo{Method: m, Path: tmpl, Name: route.GetName()})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs the access log settings and, at debug level, every
// registered route grouped by resource.
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	section("HTTP SERVER SETUP")

	if logging.IsDebugEnabled() {
		logRouteTable(router)
	}

	logging.Info("  HTTP logging enabled")
	logging.Info("    Static file logging:  %s", toggleHint(logStaticFiles, EnvLogStaticFiles))
	logging.Info("    Health check logging: %s", toggleHint(logHealthChecks, EnvLogHealthChecks))
}

func logRouteTable(router *mux.Router) {
	routes, err := GetRoutes(router)
	if err != nil {
		logging.Warn("error walking routes: %v", err)
	}
	logging.Debug("  Registered routes (%d total):", len(routes))

	groups := make(map[string][]RouteInfo)
	for _, r := range routes {
		g := getRouteGroup(r.Path)
		groups[g] = append(groups[g], r)
	}
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	for _, g := range names {
		label := g
		if label == "" {
			label = "root"
		}
		logging.Debug("  [%s]", label)
		for _, r := range groups[g] {
			logging.Debug("    %-6s %s", r.Method, r.Path)
		}
	}
}

// toggleHint renders a logging switch with the variable that flips it.
func toggleHint(on bool, env string) string {
	if on {
		return "ON"
	}
	return "OFF (set " + env + "=true to enable)"
}

// getRouteGroup returns "api/<resource>" for API routes and the first path
// segment otherwise.
func getRouteGroup(path string) string {
	first, rest, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if first != "api" || rest == "" {
		return first
	}
	resource, _, _ := strings.Cut(rest, "/")
	return "api/" + resource
}
