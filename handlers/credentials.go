package handlers

import "github.com/gin-gonic/gin"

// secretHeader carries the caller's bearer secret on read requests that
// have no JSON body.
const secretHeader = "X-Player-Secret"

// playerSecret extracts the caller's credential from the header, falling
// back to the ?secret query parameter for clients that cannot set
// headers (QR links, plain anchors).
func playerSecret(c *gin.Context) string {
	if s := c.GetHeader(secretHeader); s != "" {
		return s
	}
	return c.Query("secret")
}
