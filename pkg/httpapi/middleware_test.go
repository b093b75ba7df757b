package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jejutic/tg_vampires/pkg/config"
	"github.com/jejutic/tg_vampires/pkg/httpapi"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

var _ = Describe("Middleware", func() {
	var logs *bytes.Buffer
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		logs = &bytes.Buffer{}
		log := logger.NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, logs)

		router = gin.New()
		router.Use(httpapi.Recovery(log), httpapi.RequestID(), httpapi.Logging(log))
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/panic", func(*gin.Context) { panic("boom") })
	})

	entries := func() []map[string]any {
		var result []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
			entry := map[string]any{}
			Expect(json.Unmarshal([]byte(line), &entry)).To(Succeed(), line)
			result = append(result, entry)
		}
		return result
	}

	serve := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(httpapi.RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("tags the request entry with the request id", func() {
		rec := serve("/ok")
		Expect(rec.Code).To(Equal(http.StatusOK))

		logged := entries()
		Expect(logged).To(HaveLen(1))
		Expect(logged[0]).To(HaveKeyWithValue("msg", "request"))
		Expect(logged[0]).To(HaveKeyWithValue("request_id", "req-42"))
		Expect(logged[0]).To(HaveKeyWithValue("path", "/ok"))
	})

	It("tags a recovered panic with the request id", func() {
		rec := serve("/panic")
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(ContainSubstring(`"request_id":"req-42"`))

		logged := entries()
		Expect(logged).ToNot(BeEmpty())
		Expect(logged[0]).To(HaveKeyWithValue("msg", "panic recovered"))
		Expect(logged[0]).To(HaveKeyWithValue("request_id", "req-42"))
	})
})
