package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"chronicle/pkg/studio"
	"chronicle/pkg/web"
)

type RouterOptions struct {
	SessionSecret  string
	CORSOrigins    []string
	ToolsRPS       float64
	ToolsBurst     int
	MaxUploadBytes int64
}

// Handler serves one Studio. Handlers get the state through h, never from
// package globals.
type Handler struct {
	studio         *studio.Studio
	maxUploadBytes int64
}

func New(s *studio.Studio, maxUploadBytes int64) *Handler {
	return &Handler{studio: s, maxUploadBytes: maxUploadBytes}
}

// NewRouter builds the gin engine with middleware, templates and routes.
func NewRouter(s *studio.Studio, opts RouterOptions) (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(web.Funcs).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := web.Static()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("chronicle", store))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	New(s, opts.MaxUploadBytes).Register(r, RateLimit(opts.ToolsRPS, opts.ToolsBurst))
	return r, nil
}

func (h *Handler) Register(r *gin.Engine, toolsLimit gin.HandlerFunc) {
	r.GET("/", h.Index)

	api := r.Group("/api")
	{
		api.GET("/state", h.GetState)
		api.PUT("/mode", h.SetMode)
		api.POST("/position", h.SetPosition)

		api.GET("/article", h.GetArticle)
		api.PUT("/article/content", h.UpdateContent)
		api.PUT("/article/details", h.UpdateDetails)
		api.PUT("/article/footnotes", h.SetFootnotes)
		api.POST("/article/footnotes", h.AddFootnote)
		api.PUT("/article/location", h.SetLocation)
		api.GET("/article/blocks", h.GetBlocks)
		api.POST("/article/cover", h.UploadCover)
		api.GET("/article/export", h.ExportArticle)
		api.POST("/article/import", h.ImportArticle)
		api.POST("/article/reset", h.ResetArticle)

		tools := api.Group("/tools")
		tools.Use(toolsLimit)
		{
			tools.POST("/insight", h.FetchInsight)
			tools.POST("/image", h.GenerateImage)
			tools.POST("/location", h.GroundLocation)
		}
	}
}
