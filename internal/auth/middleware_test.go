package auth

import (
	"net/http/httptest"
	"testing"

	dom "entryledger/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdentityFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, dom.Identity(""), IdentityFromContext(c))

	SetIdentity(c, "alice")
	assert.Equal(t, dom.Identity("alice"), IdentityFromContext(c))
}
