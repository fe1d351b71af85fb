package portal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/documounttech/GGalumni/auth"
	"github.com/documounttech/GGalumni/sessions"
	"github.com/documounttech/GGalumni/store"
)

// Portal carries the shared collaborators into the route handlers.
type Portal struct {
	Records  *store.Store
	Sessions *sessions.Store
	Clock    func() time.Time
	BaseURL  string
}

func New(records *store.Store, sessionStore *sessions.Store) *Portal {
	return &Portal{
		Records:  records,
		Sessions: sessionStore,
		Clock:    time.Now,
		BaseURL:  "http://localhost:3000",
	}
}

// Register wires every route onto r. Everything behind the session gate
// shares one middleware group.
func (p *Portal) Register(r *gin.Engine) {
	r.GET("/", p.HomePage)
	r.GET("/login", p.LoginPage)
	r.POST("/login", p.HandleLogin)
	r.GET("/register", p.RegisterPage)
	r.POST("/register", p.HandleRegister)
	r.GET("/logout", p.HandleLogout)
	r.GET("/forgot-password", p.ForgotPasswordPage)
	r.POST("/forgot-password", p.HandleForgotPassword)
	r.GET("/reset-password", p.ResetPasswordPage)
	r.POST("/reset-password", p.HandleResetPassword)

	gated := r.Group("/", auth.Middleware(p.Sessions))
	gated.GET("/dashboard", p.DashboardPage)
	gated.GET("/directory", p.DirectoryPage)
	gated.GET("/events", p.EventsPage)
	gated.POST("/events", p.HandleCreateEvent)
	gated.GET("/jobs", p.JobsPage)
	gated.POST("/jobs", p.HandleCreateJob)
	gated.GET("/news", p.NewsPage)
	gated.POST("/news", p.HandleCreateNews)
	gated.GET("/profile", p.ProfilePage)
	gated.POST("/profile", p.HandleUpdateProfile)
}

// viewer is the template-facing session value: the session itself when logged
// in, nil otherwise so templates can use a plain truthiness check.
func (p *Portal) viewer(c *gin.Context) any {
	if session, ok := auth.CurrentSession(c, p.Sessions); ok {
		return session
	}
	return nil
}

// Record ids come from the creation timestamp, like every id already on disk.
func (p *Portal) newRecordID() string {
	return strconv.FormatInt(p.Clock().UnixMilli(), 10)
}

func (p *Portal) timestamp() string {
	return p.Clock().UTC().Format(time.RFC3339)
}

// storageFault answers a persistence failure. Fatal to this request only.
func (p *Portal) storageFault(c *gin.Context, action string, err error) {
	log.WithFields(log.Fields{"action": action, "error": err}).Error("storage fault")
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
	c.Abort()
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(sessions.DefaultTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
}
