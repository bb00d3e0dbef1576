// Package server exposes the calculators and the contact relay over HTTP.
package server

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devnzo/finance-calc/internal/calculations"
	"github.com/devnzo/finance-calc/internal/config"
	"github.com/devnzo/finance-calc/internal/contact"
	"github.com/devnzo/finance-calc/internal/tools"
)

// Server routes HTTP requests to calculator tools and the contact relay
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	tools   []tools.Tool
	byName  map[string]tools.Tool
	contact *contact.Service
	limiter *RateLimiter
}

func New(cfg *config.Config, toolset []tools.Tool, contactSvc *contact.Service) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	s := &Server{
		cfg:     cfg,
		engine:  gin.New(),
		tools:   toolset,
		byName:  make(map[string]tools.Tool, len(toolset)),
		contact: contactSvc,
		limiter: NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
	}
	for _, t := range toolset {
		s.byName[t.Name] = t
	}

	s.engine.Use(Recovery())
	if cfg.SentryDSN != "" {
		s.engine.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	s.engine.Use(RequestLogging(), Metrics(), CORS())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/api/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/api/v1")
	// a non-positive limit disables rate limiting
	if s.cfg.RateLimitPerMinute > 0 {
		v1.Use(RateLimit(s.limiter))
	}
	{
		v1.GET("/calculators", s.listCalculators)
		v1.POST("/calculators/:tool", s.runCalculator)
		v1.GET("/fee-tiers", s.feeTiers)
		v1.POST("/contact", s.submitContact)
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close releases background resources
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listCalculators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"calculators": s.tools})
}

func (s *Server) feeTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": calculations.DefaultFeeTiers()})
}

func (s *Server) runCalculator(c *gin.Context) {
	name := c.Param("tool")
	tool, ok := s.byName[name]
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(codeNotFound, "unknown calculator "+name, ""))
		return
	}

	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil || params == nil {
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidInput, "request body must be a JSON object", ""))
		return
	}

	result, err := tool.Handler(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculator": name, "result": result})
}

type contactBody struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email_shape"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

func (s *Server) submitContact(c *gin.Context) {
	var body contactBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := s.contact.Submit(c.Request.Context(), contact.Request{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "id": id})
}

var registerOnce sync.Once

// registerValidators reports binding errors by JSON field name and adds email_shape
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
			return contact.ValidEmail(strings.TrimSpace(fl.Field().String()))
		})
	})
}
