package auth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/documounttech/GGalumni/sessions"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session_id"

const sessionContextKey = "session"

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Middleware gates a route on a live session. Requests without one are
// redirected to /login before the handler runs; no handler side effects occur.
func Middleware(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		session, ok := store.Resolve(token)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// CurrentSession returns the session attached by Middleware. On public routes
// it falls back to resolving the request cookie directly, so pages like the
// landing page can still greet a logged-in member.
func CurrentSession(c *gin.Context, store *sessions.Store) (sessions.Session, bool) {
	if v, ok := c.Get(sessionContextKey); ok {
		if session, ok := v.(sessions.Session); ok {
			return session, true
		}
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return sessions.Session{}, false
	}
	return store.Resolve(token)
}

// GenerateResetToken issues a signed password-reset token for email.
func GenerateResetToken(email string, ttl time.Duration) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	claims := jwt.MapClaims{
		"userEmail": email,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyResetToken validates a reset token and returns the email it was
// issued for.
func VerifyResetToken(tokenString string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired reset token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid reset token claims")
	}
	email, ok := claims["userEmail"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("reset token missing email claim")
	}
	return email, nil
}
