package portal

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/documounttech/GGalumni/auth"
	"github.com/documounttech/GGalumni/sessions"
	"github.com/documounttech/GGalumni/store"
	"github.com/documounttech/GGalumni/types"
)

var errDuplicateEmail = errors.New("email already registered")

const (
	resetTokenTTL         = 2 * time.Hour
	resetPasswordMinChars = 8
)

func sessionFromUser(u types.User) sessions.Session {
	return sessions.Session{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Batch:      u.Batch,
		Department: u.Department,
	}
}

func (p *Portal) LoginPage(c *gin.Context) {
	if _, ok := auth.CurrentSession(c, p.Sessions); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (p *Portal) HandleLogin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var user types.User
	found := false
	for _, u := range store.Load[types.User](p.Records, store.Users) {
		if u.Email == email {
			user = u
			found = true
			break
		}
	}

	// One message for both unknown email and wrong password.
	if !found || !auth.CheckPassword(user.Password, password) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "Login",
			"error": "Invalid email or password",
		})
		return
	}

	token := p.Sessions.Create(sessionFromUser(user))
	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (p *Portal) RegisterPage(c *gin.Context) {
	if _, ok := auth.CurrentSession(c, p.Sessions); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register"})
}

func (p *Portal) HandleRegister(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	var created types.User
	// The duplicate check and the append run inside the users writer lock,
	// so two concurrent registrations cannot both pass the scan.
	err := store.Update(p.Records, store.Users, func(users []types.User) ([]types.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, errDuplicateEmail
			}
		}

		hashed, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}

		created = types.User{
			ID:           p.newRecordID(),
			Name:         name,
			Email:        email,
			Password:     hashed,
			Batch:        c.PostForm("batch"),
			Department:   c.PostForm("department"),
			Phone:        c.PostForm("phone"),
			City:         c.PostForm("city"),
			RegisteredAt: p.timestamp(),
		}
		return append(users, created), nil
	})
	if errors.Is(err, errDuplicateEmail) {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"title": "Register",
			"error": "Email already registered",
		})
		return
	}
	if err != nil {
		p.storageFault(c, "register", err)
		return
	}

	token := p.Sessions.Create(sessionFromUser(created))
	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (p *Portal) HandleLogout(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookie); err == nil {
		p.Sessions.Destroy(token)
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (p *Portal) ForgotPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{"title": "Forgot Password"})
}

func (p *Portal) HandleForgotPassword(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	if email == "" {
		c.HTML(http.StatusOK, "forgot_password.html", gin.H{
			"title": "Forgot Password",
			"error": "Email is required",
		})
		return
	}

	// Do not reveal whether an email exists.
	for _, u := range store.Load[types.User](p.Records, store.Users) {
		if !strings.EqualFold(u.Email, email) {
			continue
		}

		token, err := auth.GenerateResetToken(u.Email, resetTokenTTL)
		if err != nil {
			log.WithField("error", err).Error("generating reset token")
			break
		}

		resetURL := p.BaseURL + "/reset-password?token=" + url.QueryEscape(token)
		body := fmt.Sprintf(
			"Hi %s,\n\nUse this link to reset your password:\n%s\n\nThis link expires in 2 hours.\nIf you didn't request this, you can ignore this email.\n",
			u.Name,
			resetURL,
		)
		if err := SendEmail(u.Email, "Alumni Portal password reset", body); err != nil {
			log.WithFields(log.Fields{"email": u.Email, "error": err}).
				Warn("password reset email send failed")
		}
		break
	}

	c.HTML(http.StatusOK, "forgot_password.html", gin.H{
		"title":   "Forgot Password",
		"message": "If an account exists for this email, a reset link has been sent.",
	})
}

func (p *Portal) ResetPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "reset_password.html", gin.H{
		"title": "Reset Password",
		"token": c.Query("token"),
	})
}

func (p *Portal) HandleResetPassword(c *gin.Context) {
	token := strings.TrimSpace(c.PostForm("token"))
	password := c.PostForm("password")

	email, err := auth.VerifyResetToken(token)
	if err != nil {
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"title": "Reset Password",
			"error": "Reset link is invalid or has expired",
		})
		return
	}

	if len(password) < resetPasswordMinChars {
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"title": "Reset Password",
			"token": token,
			"error": "Password must be at least 8 characters",
		})
		return
	}

	found := false
	err = store.Update(p.Records, store.Users, func(users []types.User) ([]types.User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, email) {
				hashed, err := auth.HashPassword(password)
				if err != nil {
					return nil, err
				}
				users[i].Password = hashed
				found = true
				break
			}
		}
		return users, nil
	})
	if err != nil {
		p.storageFault(c, "reset password", err)
		return
	}
	if !found {
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"title": "Reset Password",
			"error": "Reset link is invalid or has expired",
		})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
