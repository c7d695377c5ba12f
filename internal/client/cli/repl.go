package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, target string, args []string) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	DeleteBoard(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	EditComment(ctx context.Context, args []string) error
	DeleteComment(ctx context.Context, args []string) error
	Diet(ctx context.Context, args []string) error
	Recipe(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Downloads(ctx context.Context) error
}

// viewAliases maps short commands to route names. Route parameters are taken
// from the command arguments in order.
var viewAliases = map[string]string{
	"home":     RouteHome,
	"about":    RouteEngineeringDescribe,
	"diseases": RouteDiseaseInfo,
	"boards":   RouteBoardList,
	"board":    RouteBoardDetail,
	"post":     RouteBoardCreate,
	"edit":     RouteBoardUpdate,
	"upload":   RouteAnalysisUpload,
	"result":   RouteAnalysisResult,
	"photos":   RouteAnalysisList,
	"photo":    RouteAnalysisDetail,
	"daily":    RouteAnalysisDate,
	"login":    RouteLogin,
	"signup":   RouteSignup,
	"register": RouteSignup,
	"mypage":   RouteMypage,
	"myboards": RouteMyBoardList,
	"profile":  RouteUpdateProfile,
	"password": RouteUpdatePassword,
}

const (
	helpGuest = `Pages: home, about, diseases, boards, board <id>, login, signup, or any path like /board/detail/3
Other: help, exit`
	helpMember = `Pages: home, about, diseases, boards, board <id>, post, edit <id>, myboards,
       upload <file>, photos, photo <photoId>, result <photoId>, daily <yyyy-mm-dd>,
       mypage, profile, password, or any path like /analysis/result/12
Actions: comment <boardId> <text>, editcomment <boardId> <commentId> <text>,
         uncomment <boardId> <commentId>, delete <boardId>, diet <analysisId> [memo],
         recipe <menu>, download <photoId>, downloads, logout, withdraw
Other: help, exit`
)

// runREPL starts a read–eval–print loop for the NutriCare CLI.
//
// Each line is either a path ("/board/detail/3"), a page alias ("board 3")
// or an action ("diet 12 no seafood"). Paths and aliases go through the
// router, so the login guard applies to both. The loop exits on EOF or when
// the user types "exit" or "quit". Command errors are printed and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nutricare %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if err := dispatch(ctx, a, cmd, args); err != nil {
			if errors.Is(err, errExit) {
				printlnFn("Bye!")
				return
			}
			printlnFn("Error:", err)
		}
	}
}

var errExit = errors.New("exit")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	if strings.HasPrefix(cmd, "/") {
		return a.Open(ctx, cmd, args)
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpMember)
		} else {
			printlnFn(helpGuest)
		}
		return nil
	case "exit", "quit":
		return errExit
	case "logout":
		return a.Logout(ctx)
	case "withdraw":
		return a.DeleteAccount(ctx)
	case "delete":
		return a.DeleteBoard(ctx, args)
	case "comment":
		return a.Comment(ctx, args)
	case "editcomment":
		return a.EditComment(ctx, args)
	case "uncomment":
		return a.DeleteComment(ctx, args)
	case "diet":
		return a.Diet(ctx, args)
	case "recipe":
		return a.Recipe(ctx, args)
	case "download":
		return a.Download(ctx, args)
	case "downloads":
		return a.Downloads(ctx)
	}

	if name, ok := viewAliases[cmd]; ok {
		return a.Open(ctx, name, args)
	}
	printlnFn("Unknown command:", cmd)
	return nil
}
