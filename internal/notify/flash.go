// Package notify carries one-shot flash notices between requests,
// the server-side equivalent of a toast: set on redirect, shown on
// the next render, then gone.
package notify

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const cookieName = "jp_flash"

// secure mirrors the session cookie's Secure attribute so the flash
// cookie is never the weaker of the two.
var secure bool

// ConfigureSecure sets the Secure attribute for flash cookies.
func ConfigureSecure(v bool) {
	secure = v
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notice is a single user-visible, non-blocking message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Set queues a notice for the next rendered page.
func Set(c *gin.Context, level Level, message string) {
	buf, err := json.Marshal(Notice{Level: level, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(cookieName, base64.URLEncoding.EncodeToString(buf), 60, "/", "", secure, true)
}

// Pop returns the pending notice, if any, and clears it.
func Pop(c *gin.Context) *Notice {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", secure, true)

	buf, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(buf, &n); err != nil {
		return nil
	}
	return &n
}

