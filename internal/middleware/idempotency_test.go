package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/adapters/idempotency"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type IdempotencyTestSuite struct {
	suite.Suite
	router *gin.Engine
	calls  int
}

func TestIdempotencyTestSuite(t *testing.T) {
	suite.Run(t, new(IdempotencyTestSuite))
}

func (suite *IdempotencyTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.calls = 0

	suite.router = gin.New()
	// Recovery sits outside the idempotency middleware, as in the server.
	suite.router.Use(gin.RecoveryWithWriter(io.Discard))
	suite.router.POST("/sales", middleware.Idempotency(idempotency.NewMemoryStore(), time.Hour), func(c *gin.Context) {
		suite.calls++
		if suite.calls == 1 {
			panic("till printer offline")
		}
		c.JSON(http.StatusCreated, gin.H{"call": suite.calls})
	})
}

func (suite *IdempotencyTestSuite) post(key string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/sales", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, key)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IdempotencyTestSuite) TestPanicReleasesKey() {
	first := suite.post("sale-77")
	suite.Equal(http.StatusInternalServerError, first.Code)

	// The retry runs the handler again instead of finding the key pending.
	second := suite.post("sale-77")
	suite.Equal(http.StatusCreated, second.Code)
	suite.Equal(2, suite.calls)

	// Once completed, the response is replayed.
	third := suite.post("sale-77")
	suite.Equal(http.StatusCreated, third.Code)
	suite.Equal("true", third.Header().Get(middleware.IdempotentReplayedHeader))
	suite.Equal(2, suite.calls)
}
