package middleware

import (
	"net/http"
	"strings"

	"bomboniere/internal/apierror"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	UsuarioKey = "usuario"
	TokenKey   = "session_token"
)

// SessionAuth validates the opaque Bearer token on every protected route.
// Expired sessions are deleted on the spot, so a revoked or stale token never
// authenticates again.
func SessionAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("autenticação necessária"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		sessao, err := auth.Autenticar(c.Request.Context(), token)
		if err != nil {
			if apierror.KindOf(err) == apierror.KindUnauthorized {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(err.Error()))
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("erro interno do servidor"))
			}
			return
		}

		c.Set(UsuarioKey, sessao.Usuario)
		c.Set(TokenKey, token)
		c.Next()
	}
}
