package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Match(t *testing.T) {
	r := NewRouter(nil)

	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"/", RouteHome, map[string]string{}},
		{"", RouteHome, map[string]string{}},
		{"/board", RouteBoardList, map[string]string{}},
		{"/board/", RouteBoardList, map[string]string{}},
		{"/board/create", RouteBoardCreate, map[string]string{}},
		{"/board/detail/3", RouteBoardDetail, map[string]string{"id": "3"}},
		{"/analysis", RouteAnalysisUpload, map[string]string{}},
		{"/analysis/daily/2024-05-01", RouteAnalysisDate, map[string]string{"date": "2024-05-01"}},
		{"/user/updatePassword/7", RouteUpdatePassword, map[string]string{"userid": "7"}},
		{"/login", RouteUserLogin, map[string]string{}},
		{"/signup", RouteUserJoin, map[string]string{}},
		{"/disease-info", RouteDiseaseInfo, map[string]string{}},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rt, params, ok := r.Match(tc.path)
			require.True(t, ok)
			assert.Equal(t, tc.name, rt.Name)
			assert.Equal(t, tc.params, params)
		})
	}

	for _, p := range []string{"/nope", "/board/detail", "/board/detail/3/extra"} {
		_, _, ok := r.Match(p)
		assert.False(t, ok, p)
	}
}

func TestRouter_ResolveNotFound(t *testing.T) {
	r := NewRouter(nil)
	_, err := r.Resolve("/unknown/page")
	require.ErrorIs(t, err, ErrRouteNotFound)

	_, _, err = r.ResolveName("nosuchroute", nil, nil)
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouter_GuardLoggedOut(t *testing.T) {
	r := NewRouter(func() bool { return false })

	nav, err := r.Resolve("/mypage")
	require.NoError(t, err)
	assert.Equal(t, RouteUserLogin, nav.Route.Name)
	assert.Equal(t, msgLoginRequired, nav.Notice)

	for _, p := range []string{"/", "/board", "/board/detail/1", "/user/login", "/user/join", "/disease-info", "/engineeringDescribe", "/oauth/callback"} {
		nav, err := r.Resolve(p)
		require.NoError(t, err)
		assert.Empty(t, nav.Notice, p)
		want, _, _ := r.Match(p)
		assert.Equal(t, want.Name, nav.Route.Name, p)
	}

	nav, err = r.Resolve("/board/create")
	require.NoError(t, err)
	assert.Equal(t, RouteUserLogin, nav.Route.Name)
}

func TestRouter_GuardLoggedIn(t *testing.T) {
	r := NewRouter(func() bool { return true })

	for _, p := range []string{"/user/login", "/user/join", "/login", "/signup"} {
		nav, err := r.Resolve(p)
		require.NoError(t, err)
		assert.Equal(t, RouteHome, nav.Route.Name, p)
	}

	nav, err := r.Resolve("/mypage")
	require.NoError(t, err)
	assert.Equal(t, RouteMypage, nav.Route.Name)
	assert.Empty(t, nav.Notice)
}

func TestRouter_ResolveName(t *testing.T) {
	r := NewRouter(func() bool { return true })

	nav, rest, err := r.ResolveName(RouteBoardDetail, []string{"5", "extra"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "5"}, nav.Params)
	assert.Equal(t, []string{"extra"}, rest)

	nav, _, err = r.ResolveName(RouteAnalysisList, nil, map[string]string{"userId": "9"})
	require.NoError(t, err)
	assert.Equal(t, "9", nav.Params["userId"])

	_, _, err = r.ResolveName(RouteBoardDetail, nil, nil)
	require.Error(t, err)

	nav, _, err = r.ResolveName(RouteLogin, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RouteHome, nav.Route.Name)
}

func TestRouter_ResolveNameGuardBeforeParams(t *testing.T) {
	r := NewRouter(func() bool { return false })

	nav, _, err := r.ResolveName(RouteUpdatePassword, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RouteUserLogin, nav.Route.Name)
	assert.Equal(t, msgLoginRequired, nav.Notice)
}

func TestRouter_QueryAndPath(t *testing.T) {
	r := NewRouter(nil)

	nav, err := r.Resolve("/oauth/callback?token=abc.def")
	require.NoError(t, err)
	assert.Equal(t, RouteOAuthCallback, nav.Route.Name)
	assert.Equal(t, "abc.def", nav.Query.Get("token"))

	assert.Equal(t, "/board/detail/3", r.Path(RouteBoardDetail, map[string]string{"id": "3"}))
	assert.Equal(t, "/", r.Path(RouteHome, nil))
}
