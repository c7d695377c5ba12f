package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/config"
	"github.com/nutricare/nutricare-client/internal/client/recipes"
	"github.com/nutricare/nutricare-client/internal/client/repositories"
	"github.com/nutricare/nutricare-client/internal/client/stores"
	"github.com/nutricare/nutricare-client/internal/logging"
)

const msgAccessDenied = "access denied"

// viewFunc renders one page. args are the command words left after the
// route parameters were taken.
type viewFunc func(ctx context.Context, nav Navigation, args []string) error

type App struct {
	cfg *config.Config
	log logging.Logger

	repos    *repositories.Repositories
	api      *client.HTTPClient
	session  *stores.SessionStore
	boards   *stores.BoardStore
	comments *stores.CommentStore
	analysis *stores.AnalysisStore
	recipes  *recipes.Searcher

	router *Router
	views  map[string]viewFunc
	reader *bufio.Reader
	out    io.Writer

	mu      sync.Mutex
	current Navigation
}

// NewApp opens the local database and wires the API client and stores.
// Prompts read from in and pages are written to out.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	repos, err := repositories.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	tokens := stores.NewTokenStore(repos.Metadata)

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:           cfg.ServerBaseURL,
		RequestTimeout:    cfg.RequestTimeout,
		CreateTimeout:     cfg.CreateTimeout,
		GenerationTimeout: cfg.GenerationTimeout,
		Tokens:            tokens,
		Logger:            log,
	})
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		repos:    repos,
		api:      api,
		session:  stores.NewSessionStore(api, tokens, log),
		boards:   stores.NewBoardStore(api, log),
		comments: stores.NewCommentStore(api, log),
		analysis: stores.NewAnalysisStore(api, log, cfg.AnalysisConcurrency),
		recipes:  recipes.NewSearcher(recipes.Options{APIKey: cfg.YouTubeAPIKey, Logger: log}),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.router = NewRouter(a.session.IsLoggedIn)
	a.views = a.routeViews()

	api.SetHooks(client.Hooks{
		OnUnauthorized: a.session.HandleUnauthorized,
		OnForbidden: func(ctx context.Context, path string) {
			a.log.Warn(ctx, "access denied", "path", path)
			a.println(msgAccessDenied)
		},
	})
	a.session.OnLogout(func(context.Context) {
		a.setCurrent(Navigation{Route: Route{Name: RouteHome, Path: "/"}})
	})

	return a, nil
}

// Run restores a stored session, shows the home page and serves the REPL
// until the user exits or the input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "stored session was not restored", "error", err)
	}

	a.println("Welcome to NutriCare CLI (type 'help' for commands)")
	if err := a.Open(ctx, "/", nil); err != nil {
		a.println("Error:", err)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	return a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// status is shown in the prompt: the user's name and the current path.
func (a *App) status() string {
	st := a.session.State()
	cur := a.Current()

	name := ""
	if st.UserInfo != nil {
		name = st.UserInfo.Name
		if name == "" {
			name = st.UserInfo.Email
		}
	}

	path := a.router.Path(cur.Route.Name, cur.Params)
	if name == "" {
		return path
	}
	return name + " " + path
}

// Current returns the page last navigated to.
func (a *App) Current() Navigation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) setCurrent(nav Navigation) {
	a.mu.Lock()
	a.current = nav
	a.mu.Unlock()
}

// Open navigates to target and renders the page. target is either a path
// ("/board/detail/3") or a route name whose parameters are taken from args.
func (a *App) Open(ctx context.Context, target string, args []string) error {
	var (
		nav Navigation
		err error
	)
	if len(target) > 0 && target[0] == '/' {
		nav, err = a.router.Resolve(target)
	} else {
		nav, args, err = a.router.ResolveName(target, args, a.selfParams())
	}
	if err != nil {
		if errors.Is(err, ErrRouteNotFound) {
			a.println("Page not found:", target)
		}
		return err
	}
	return a.render(ctx, nav, args)
}

func (a *App) render(ctx context.Context, nav Navigation, args []string) error {
	if nav.Notice != "" {
		a.println(nav.Notice)
	}
	a.setCurrent(nav)

	view, ok := a.views[nav.Route.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, nav.Route.Name)
	}
	return view(ctx, nav, args)
}

// selfParams fills user id parameters with the logged in user.
func (a *App) selfParams() map[string]string {
	id := a.session.State().UserID
	if id == 0 {
		return nil
	}
	s := strconv.FormatInt(id, 10)
	return map[string]string{"userId": s, "userid": s}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) routeViews() map[string]viewFunc {
	return map[string]viewFunc{
		RouteHome:                a.viewHome,
		RouteEngineeringDescribe: a.viewEngineering,
		RouteDiseaseInfo:         a.viewDiseaseInfo,
		RouteBoardList:           a.viewBoardList,
		RouteBoardCreate:         a.viewBoardCreate,
		RouteBoardDetail:         a.viewBoardDetail,
		RouteBoardUpdate:         a.viewBoardUpdate,
		RouteAnalysisUpload:      a.viewAnalysisUpload,
		RouteAnalysisResult:      a.viewAnalysisResult,
		RouteAnalysisList:        a.viewAnalysisList,
		RouteAnalysisDetail:      a.viewAnalysisDetail,
		RouteAnalysisDate:        a.viewAnalysisDate,
		RouteUserLogin:           a.viewLogin,
		RouteUserJoin:            a.viewJoin,
		RouteMypage:              a.viewMypage,
		RouteUserDetail:          a.viewMypage,
		RouteMyBoardList:         a.viewMyBoards,
		RouteUpdateProfile:       a.viewUpdateProfile,
		RouteUpdatePassword:      a.viewUpdatePassword,
		RouteOAuthCallback:       a.viewOAuthCallback,
	}
}

// parseID reads a positive numeric id from a route parameter or argument.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}
