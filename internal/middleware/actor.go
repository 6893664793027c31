package middleware

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"docflow/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// ActorHeader carries the caller identity set by the authenticating proxy.
	ActorHeader = "X-Actor-ID"
	actorKey    = "actorID"

	maxActorLength = 64
)

// ExtractActor copies the actor header into the request context. Requests without the
// header pass through; handlers decide whether an actor is required.
func ExtractActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			c.Next()
			return
		}
		if utf8.RuneCountInString(actor) > maxActorLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, ActorHeader+" is too long"))
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorID returns the actor set by ExtractActor, or "" when none was sent.
func ActorID(c *gin.Context) string {
	v, ok := c.Get(actorKey)
	if !ok {
		return ""
	}
	actor, _ := v.(string)
	return actor
}
