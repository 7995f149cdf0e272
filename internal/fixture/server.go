// Package fixture serves a local stand-in for the ExcelChat landing page. It
// exposes the same login dialog, identifiers and messages as the live site
// so the login scenarios can run without network access.
package fixture

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie names the cookie set after a successful login.
const SessionCookie = "excelchat_session"

// Options configures the fixture site.
type Options struct {
	// BasePath must start and end with '/'.
	BasePath string
	Accounts []Account
	// AccessLog enables gin's request logger.
	AccessLog bool
	// Mode is passed to gin.SetMode before the router is built. Empty keeps
	// the current mode.
	Mode string
}

// Site is the fixture web application.
type Site struct {
	basePath string
	accounts *AccountStore
	sessions sync.Map // session id -> email
	router   *gin.Engine
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	OK       bool   `json:"ok"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// New builds the site and seeds its accounts.
func New(opts Options) (*Site, error) {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if !strings.HasPrefix(opts.BasePath, "/") || !strings.HasSuffix(opts.BasePath, "/") {
		return nil, fmt.Errorf("base path must start and end with '/', got %q", opts.BasePath)
	}

	s := &Site{basePath: opts.BasePath, accounts: NewAccountStore()}
	for _, a := range opts.Accounts {
		if err := s.accounts.Add(a.Email, a.Password); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.AccessLog {
		r.Use(gin.LoggerWithWriter(log.Writer()))
	}
	r.SetHTMLTemplate(tmpl)

	r.GET(s.basePath, s.handleIndex)
	r.POST(s.LoginPath(), s.handleLogin)
	r.GET(s.HomePath(), s.handleHome)
	if s.basePath != "/" {
		r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, s.basePath) })
	}
	s.router = r
	return s, nil
}

// Handler returns the site's HTTP handler.
func (s *Site) Handler() http.Handler { return s.router }

// Accounts exposes the account store, for seeding extra logins.
func (s *Site) Accounts() *AccountStore { return s.accounts }

func (s *Site) LoginPath() string { return s.basePath + "api/login" }
func (s *Site) HomePath() string  { return s.basePath + "home" }

func (s *Site) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Excelchat - Get instant Excel help",
		"LoginPath": s.LoginPath(),
	})
}

func (s *Site) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, loginResponse{Message: "malformed request"})
		return
	}

	if msg := Authenticate(s.accounts, req.Email, req.Password); msg != "" {
		c.JSON(http.StatusOK, loginResponse{Message: msg})
		return
	}

	id := uuid.NewString()
	s.sessions.Store(id, normalizeEmail(req.Email))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int((24 * time.Hour).Seconds()), s.basePath, "", false, true)
	c.JSON(http.StatusOK, loginResponse{OK: true, Redirect: s.HomePath()})
}

func (s *Site) handleHome(c *gin.Context) {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		c.Redirect(http.StatusFound, s.basePath)
		return
	}
	email, ok := s.sessions.Load(id)
	if !ok {
		c.Redirect(http.StatusFound, s.basePath)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Excelchat - Home",
		"Email": email,
	})
}

// Server is a running fixture site.
type Server struct {
	// URL is the landing page, e.g. http://127.0.0.1:41234/solutions/excel-chat/.
	URL  string
	http *http.Server
	done chan error
}

// Serve listens on addr (use port 0 for an ephemeral port) and serves the
// site in the background until Shutdown.
func (s *Site) Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	srv := &Server{
		URL:  "http://" + ln.Addr().String() + s.basePath,
		http: &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second},
		done: make(chan error, 1),
	}
	go func() {
		err := srv.http.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		srv.done <- err
	}()
	log.Printf("[fixture] serving %s", srv.URL)
	return srv, nil
}

// Shutdown stops the server and waits for it to exit.
func (srv *Server) Shutdown(ctx context.Context) error {
	if err := srv.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down fixture: %w", err)
	}
	return <-srv.done
}
