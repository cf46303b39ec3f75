package echoapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/nav"
	"github.com/shulehub/shule/core/session"
)

type portalApi struct {
	conf      *core.Config
	sessions  *session.Store
	loginFlow *session.Controller
	views     *nav.Registry
}

func registerPortalAPI(g *echo.Group, opts *Options) {
	api := portalApi{
		conf:      opts.Conf,
		sessions:  opts.Sessions,
		loginFlow: opts.LoginFlow,
		views:     opts.Views,
	}

	// un-authed endpoints
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/roles", api.queryRoles)

	// any authenticated principal
	g.GET("/nav", api.nav)

	// role-scoped views; every route is wrapped by the guard
	for _, role := range auth.AllRoles {
		prefix := "/portal/" + string(role)
		pg := g.Group(prefix, guardMiddleware(opts.Guard, opts.Sessions, role))
		for _, view := range opts.Views.Views(role) {
			pg.GET(strings.TrimPrefix(view.Path, prefix), api.view)
		}
	}
}

// Handlers

func (api *portalApi) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	loginCtx, cancel := context.WithTimeout(ctx.Request().Context(), api.conf.Server.LoginTimeout)
	defer cancel()

	outcome, err := api.loginFlow.Submit(loginCtx, creds)
	if err != nil {
		return err
	}

	token, err := GenerateToken(api.conf, GetPrincipalClaims(api.conf, outcome.Principal))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:       token,
		Principal:   outcome.Principal,
		Destination: outcome.Destination,
	})
}

func (api *portalApi) logout(ctx echo.Context) error {
	api.loginFlow.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *portalApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, auth.Roles)
}

// nav lists the navigation entries of the current session's role.
func (api *portalApi) nav(ctx echo.Context) error {
	p, ok := api.sessions.Current()
	if !ok {
		return errUnauthenticated
	}
	return ctx.JSON(http.StatusOK, api.views.Views(p.Role))
}

// view serves the static mock payload of a guarded portal view.
func (api *portalApi) view(ctx echo.Context) error {
	path := strings.TrimPrefix(ctx.Path(), "/v1")
	if payload, ok := mockViewData[path]; ok {
		return ctx.JSON(http.StatusOK, payload)
	}
	return errHttpNotFound
}

type LoginResponse struct {
	Token       string             `json:"token"`
	Principal   auth.Principal     `json:"principal"`
	Destination nav.ViewDescriptor `json:"destination"`
}

// mockViewData is placeholder dashboard content, keyed by view path.
var mockViewData = map[string]echo.Map{
	"/portal/student/dashboard": {
		"title":      "Student Dashboard",
		"courses":    []string{"Mathematics", "Physics", "Literature"},
		"attendance": 92,
		"notices":    []string{"Term 2 exams start May 12", "Library hours extended"},
	},
	"/portal/student/attendance": {
		"title":   "Attendance",
		"percent": 92,
		"absent":  []string{"2021-03-02", "2021-03-17"},
	},
	"/portal/student/reports": {
		"title":   "Reports",
		"reports": []string{"Term 1 Report Card", "Mid-term Progress"},
	},
	"/portal/student/messages": {
		"title":  "Messages",
		"unread": 3,
	},
	"/portal/faculty/dashboard": {
		"title":   "Faculty Dashboard",
		"classes": []string{"Form 2A Mathematics", "Form 3B Physics"},
		"pending": 7,
	},
	"/portal/faculty/submissions": {
		"title":       "Submissions",
		"outstanding": 12,
	},
	"/portal/faculty/grading": {
		"title": "Grading",
		"queue": []string{"Assignment 4 - Form 2A", "Lab Report 2 - Form 3B"},
	},
	"/portal/faculty/broadcast": {
		"title": "Broadcast",
		"sent":  4,
	},
	"/portal/admin/dashboard": {
		"title":      "Admin Dashboard",
		"enrollment": 1240,
		"staff":      86,
	},
	"/portal/admin/analytics": {
		"title":         "Analytics",
		"avgAttendance": 89,
	},
	"/portal/admin/accounts": {
		"title":  "Accounts",
		"active": 1304,
	},
	"/portal/admin/broadcast": {
		"title": "Broadcast",
		"sent":  11,
	},
	"/portal/government/dashboard": {
		"title":   "Government Dashboard",
		"schools": 37,
	},
	"/portal/government/reports": {
		"title":   "Reports",
		"reports": []string{"Q1 Enrollment", "Q1 Attendance"},
	},
	"/portal/government/compliance": {
		"title":     "Compliance",
		"compliant": 34,
		"flagged":   3,
	},
}
