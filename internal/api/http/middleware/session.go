package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const sessionIDKey = "session_id"

type SessionOptions struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware resolves the caller's session id from a signed cookie.
// A missing, expired or tampered cookie starts a new session.
func SessionMiddleware(opts SessionOptions) gin.HandlerFunc {
	codec := newSessionCodec(opts)
	maxAge := int(opts.TTL / time.Second)

	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(opts.CookieName); err == nil {
			sid = decodeSessionID(codec, opts.CookieName, raw)
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		c.Set(sessionIDKey, sid)

		if value, err := codec.Encode(opts.CookieName, sid); err == nil {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, value, maxAge, "/", "", opts.Secure, true)
		}

		c.Next()
	}
}

// SessionID returns the session id resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

func newSessionCodec(opts SessionOptions) *securecookie.SecureCookie {
	codec := securecookie.New([]byte(opts.Secret), nil)
	codec.MaxAge(int(opts.TTL / time.Second))
	codec.SetSerializer(securecookie.JSONEncoder{})
	return codec
}

func decodeSessionID(codec *securecookie.SecureCookie, name, value string) string {
	var sid string
	if err := codec.Decode(name, value, &sid); err != nil {
		return ""
	}
	if _, err := uuid.Parse(sid); err != nil {
		return ""
	}
	return sid
}
