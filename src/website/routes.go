package website

import (
	"net/http"
	"regexp"
	"time"

	"github.com/inkwell-net/inkwell/src/blogdata"
	"github.com/inkwell-net/inkwell/src/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewApiRoutes(conn *pgxpool.Pool) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			func(h Handler) Handler {
				return func(c *RequestContext) ResponseData {
					c.Conn = conn
					c.Store = blogdata.NewPSQLStore(conn)
					return h(c)
				}
			},
			trackRequestMiddleware,
			panicCatcherMiddleware,
			logContextErrorsMiddleware,
			currentUserMiddleware,
		},
	}

	routes.GET(regexp.MustCompile(`^/$`), Index)

	api := routes.Group(regexp.MustCompile(`^/api/v1`))
	authed := api.WithMiddleware(needsAuth)

	securityTimer := time.Duration(config.Config.Auth.MinSecurityDelayMs) * time.Millisecond
	api.POST(regexp.MustCompile(`^/auth/login$`), func(c *RequestContext) ResponseData {
		return securityTimerMiddleware(securityTimer, Login)(c)
	})
	authed.GET(regexp.MustCompile(`^/auth/me$`), CurrentUserProfile)
	authed.DELETE(regexp.MustCompile(`^/auth/logout$`), Logout)

	api.GET(regexp.MustCompile(`^/users$`), ListUsers)
	api.POST(regexp.MustCompile(`^/users$`), CreateUser)
	api.GET(regexp.MustCompile(`^/users/(?P<id>\d+)$`), GetUser)
	authed.PUT(regexp.MustCompile(`^/users/(?P<id>\d+)$`), UpdateUser)
	authed.DELETE(regexp.MustCompile(`^/users/(?P<id>\d+)$`), DeleteUser)

	api.GET(regexp.MustCompile(`^/posts$`), ListPosts)
	authed.POST(regexp.MustCompile(`^/posts$`), CreatePost)
	api.GET(regexp.MustCompile(`^/posts/(?P<id>\d+)$`), GetPost)
	authed.PUT(regexp.MustCompile(`^/posts/(?P<id>\d+)$`), UpdatePost)
	authed.DELETE(regexp.MustCompile(`^/posts/(?P<id>\d+)$`), DeletePost)

	api.GET(regexp.MustCompile(`^/posts/(?P<id>\d+)/comments$`), ListPostComments)
	authed.POST(regexp.MustCompile(`^/posts/(?P<id>\d+)/comments$`), CreateComment)
	authed.GET(regexp.MustCompile(`^/posts/(?P<id>\d+)/comments/pending$`), ListPendingComments)

	authed.PUT(regexp.MustCompile(`^/comments/(?P<id>\d+)$`), EditComment)
	authed.DELETE(regexp.MustCompile(`^/comments/(?P<id>\d+)$`), DeleteComment)
	authed.PATCH(regexp.MustCompile(`^/comments/(?P<id>\d+)/approval$`), SetCommentApproval)

	routes.AnyMethod(regexp.MustCompile(`^`), FourOhFour)

	return router
}

func Index(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}{
		Name:    "Inkwell",
		Version: "v1",
	})
	return res
}
