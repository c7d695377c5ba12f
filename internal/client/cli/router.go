package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Route names.
const (
	RouteHome                = "Home"
	RoutePageDescribe        = "pageDescribe"
	RouteEngineeringDescribe = "engineeringDescribe"
	RouteDiseaseInfo         = "diseaseInfo"
	RouteBoard               = "board"
	RouteBoardList           = "boardList"
	RouteBoardCreate         = "boardCreate"
	RouteBoardDetail         = "boardDetail"
	RouteBoardUpdate         = "boardUpdate"
	RouteAnalysisUpload      = "analysisUpload"
	RouteAnalysisResult      = "analysisResult"
	RouteAnalysisList        = "analysisList"
	RouteAnalysisDetail      = "analysisDetail"
	RouteAnalysisDate        = "analysisDate"
	RouteLogin               = "login"
	RouteSignup              = "signup"
	RouteUserLogin           = "userLogin"
	RouteUserJoin            = "userJoin"
	RouteMypage              = "mypage"
	RouteUserDetail          = "userDetail"
	RouteMyBoardList         = "myBoardList"
	RouteUpdateProfile       = "updateProfile"
	RouteUpdatePassword      = "updatePassword"
	RouteOAuthCallback       = "oauthCallback"
)

const msgLoginRequired = "login required"

var ErrRouteNotFound = errors.New("not found")

// Route is one navigable page. Path segments starting with ':' are
// parameters.
type Route struct {
	Name string
	Path string
}

// routeTable lists the pages in match order.
var routeTable = []Route{
	{RouteHome, "/"},
	{RouteEngineeringDescribe, "/engineeringDescribe"},
	{RouteDiseaseInfo, "/disease-info"},
	{RouteBoardList, "/board"},
	{RouteBoardCreate, "/board/create"},
	{RouteBoardDetail, "/board/detail/:id"},
	{RouteBoardUpdate, "/board/update/:id"},
	{RouteAnalysisUpload, "/analysis/upload"},
	{RouteAnalysisResult, "/analysis/result/:photoId"},
	{RouteAnalysisList, "/analysis/list/:userId"},
	{RouteAnalysisDetail, "/analysis/detail/:photoId"},
	{RouteAnalysisDate, "/analysis/daily/:date"},
	{RouteUserLogin, "/user/login"},
	{RouteUserJoin, "/user/join"},
	{RouteMypage, "/mypage"},
	{RouteUserDetail, "/user/detail/:userid"},
	{RouteMyBoardList, "/user/myboards"},
	{RouteUpdateProfile, "/user/updateProfile/:userid"},
	{RouteUpdatePassword, "/user/updatePassword/:userid"},
	{RouteOAuthCallback, "/oauth/callback"},
}

// redirects maps paths and route names that only forward elsewhere.
var redirects = map[string]string{
	"/analysis":       RouteAnalysisUpload,
	"/login":          RouteUserLogin,
	"/signup":         RouteUserJoin,
	RouteLogin:        RouteUserLogin,
	RouteSignup:       RouteUserJoin,
	RouteBoard:        RouteBoardList,
	RoutePageDescribe: RouteHome,
}

var publicRoutes = map[string]bool{
	RouteHome:                true,
	RoutePageDescribe:        true,
	RouteEngineeringDescribe: true,
	RouteBoard:               true,
	RouteBoardList:           true,
	RouteBoardDetail:         true,
	RouteUserLogin:           true,
	RouteLogin:               true,
	RouteUserJoin:            true,
	RouteSignup:              true,
	RouteOAuthCallback:       true,
	RouteDiseaseInfo:         true,
}

func isPublic(name string) bool {
	return publicRoutes[name]
}

// Navigation is the outcome of resolving a location.
type Navigation struct {
	Route  Route
	Params map[string]string
	Query  url.Values
	// Notice is shown to the user when the guard redirected.
	Notice string
}

// Router resolves locations against the route table and applies the login
// guard.
type Router struct {
	routes     []Route
	byName     map[string]Route
	isLoggedIn func() bool
}

func NewRouter(isLoggedIn func() bool) *Router {
	r := &Router{
		routes:     routeTable,
		byName:     make(map[string]Route, len(routeTable)),
		isLoggedIn: isLoggedIn,
	}
	for _, rt := range routeTable {
		r.byName[rt.Name] = rt
	}
	return r
}

// Match finds the route for path without applying the guard.
func (r *Router) Match(path string) (Route, map[string]string, bool) {
	path = normalizePath(path)
	if name, ok := redirects[path]; ok {
		rt := r.byName[name]
		return rt, map[string]string{}, true
	}

	segs := splitPath(path)
	for _, rt := range r.routes {
		if params, ok := matchSegments(splitPath(rt.Path), segs); ok {
			return rt, params, true
		}
	}
	return Route{}, nil, false
}

// Resolve turns a location ("/board/detail/3", "/oauth/callback?token=...")
// into a Navigation, applying the guard.
func (r *Router) Resolve(location string) (Navigation, error) {
	path, rawQuery, _ := strings.Cut(location, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Navigation{}, fmt.Errorf("bad query %q: %w", rawQuery, err)
	}

	rt, params, ok := r.Match(path)
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}
	return r.guard(Navigation{Route: rt, Params: params, Query: query}), nil
}

// ResolveName builds the path of a named route from positional args, then
// resolves it. A parameter missing from args is looked up in defaults. Args
// beyond the route's parameters are returned.
func (r *Router) ResolveName(name string, args []string, defaults map[string]string) (Navigation, []string, error) {
	if target, ok := redirects[name]; ok {
		name = target
	}
	rt, ok := r.byName[name]
	if !ok {
		return Navigation{}, args, fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	nav := r.guard(Navigation{Route: rt, Params: map[string]string{}, Query: url.Values{}})
	if nav.Route.Name != rt.Name {
		return nav, nil, nil
	}

	for _, seg := range splitPath(rt.Path) {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		key := seg[1:]
		if len(args) > 0 {
			nav.Params[key] = args[0]
			args = args[1:]
			continue
		}
		if v := defaults[key]; v != "" {
			nav.Params[key] = v
			continue
		}
		return Navigation{}, nil, fmt.Errorf("%s: missing %s", name, key)
	}
	return nav, args, nil
}

// Path renders the concrete path of a named route.
func (r *Router) Path(name string, params map[string]string) string {
	rt, ok := r.byName[name]
	if !ok {
		return "/"
	}
	segs := splitPath(rt.Path)
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			segs[i] = url.PathEscape(params[seg[1:]])
		}
	}
	return "/" + strings.Join(segs, "/")
}

func (r *Router) guard(nav Navigation) Navigation {
	loggedIn := r.isLoggedIn != nil && r.isLoggedIn()

	if !loggedIn && !isPublic(nav.Route.Name) {
		return Navigation{
			Route:  r.byName[RouteUserLogin],
			Params: map[string]string{},
			Query:  url.Values{},
			Notice: msgLoginRequired,
		}
	}
	if loggedIn && (nav.Route.Name == RouteUserLogin || nav.Route.Name == RouteUserJoin) {
		return Navigation{Route: r.byName[RouteHome], Params: map[string]string{}, Query: url.Values{}}
	}
	return nav
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			v, err := url.PathUnescape(segs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[p[1:]] = v
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
