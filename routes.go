package main

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/figure"
	"github.com/Zachkp/portfolio/internal/motion"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

type server struct {
	scene  *scene.Scene
	themes *theme.Store
	policy figure.Policy
	// done closes when the server shuts down; open frame streams end with it.
	done <-chan struct{}
}

type pointerInput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"gt=0"`
	Height float64 `json:"height" binding:"gt=0"`
}

type scrollInput struct {
	ScrollY        float64 `json:"scrollY"`
	ViewportHeight float64 `json:"viewportHeight" binding:"gt=0"`
}

type pullInput struct {
	DY float64 `json:"dy"`
	// Pull is the client's own running total, sent with up.
	Pull *float64 `json:"pull"`
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title":    "Zach Kordas-Potter",
			"theme":    s.themes.Current(),
			"nav":      content.Nav(),
			"sections": content.Sections(),
		})
	})

	// HTMX section fragments
	r.GET("/section/:id", func(c *gin.Context) {
		sec, ok := content.Find(c.Param("id"))
		if !ok {
			c.String(http.StatusNotFound, "section not found")
			return
		}
		c.HTML(http.StatusOK, "section", sec)
	})

	// Contact form only logs; nothing leaves the server
	r.POST("/contact", func(c *gin.Context) {
		name := c.PostForm("fullName")
		email := c.PostForm("email")
		message := c.PostForm("message")

		if name == "" || email == "" || message == "" {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Please fill in your name, email and message.",
			})
			return
		}

		log.Printf("Contact form submitted by %s (%s): %d characters", name, email, len(message))
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Message sent! (Demo)",
		})
	})

	api := r.Group("/api")

	api.GET("/theme", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"theme": s.themes.Current()})
	})

	api.POST("/theme/toggle", func(c *gin.Context) {
		next, err := s.themes.Toggle(c.Request.Context())
		if err != nil {
			log.Printf("Error saving theme %s: %v", next, err)
		}
		c.JSON(http.StatusOK, gin.H{"theme": next, "persisted": err == nil})
	})

	api.POST("/input/pointer", func(c *gin.Context) {
		var in pointerInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.scene.PointerMove(in.X, in.Y, in.Width, in.Height)
		c.Status(http.StatusNoContent)
	})

	api.POST("/input/scroll", func(c *gin.Context) {
		var in scrollInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.scene.Scroll(in.ScrollY, in.ViewportHeight)
		c.Status(http.StatusNoContent)
	})

	api.POST("/pull/:action", func(c *gin.Context) {
		var in pullInput
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		toggled := false
		switch c.Param("action") {
		case "down":
			s.scene.PullDown()
		case "move":
			s.scene.PullMove(in.DY)
		case "up":
			if in.Pull != nil {
				toggled = s.scene.PullRelease(*in.Pull)
			} else {
				toggled = s.scene.PullUp()
			}
		case "cancel":
			toggled = s.scene.PullCancel()
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown pull action"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pull":    s.scene.PullState(),
			"toggled": toggled,
			"theme":   s.themes.Current(),
		})
	})

	api.GET("/pose", func(c *gin.Context) {
		section, err := strconv.Atoi(c.DefaultQuery("section", "0"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "section must be an integer"})
			return
		}
		elapsed, err := strconv.ParseFloat(c.DefaultQuery("t", "0"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "t must be a number"})
			return
		}
		planner := motion.DefaultPlanner
		if c.Query("compact") == "1" {
			planner = motion.Planner{Base: motion.CompactBase}
		}
		c.JSON(http.StatusOK, planner.Plan(section, elapsed))
	})

	api.POST("/capability", func(c *gin.Context) {
		var caps figure.Capability
		if err := c.ShouldBindJSON(&caps); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"enabled": s.policy.Allows(caps)})
	})

	api.GET("/frame", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.scene.Latest())
	})

	// Server-sent frame stream
	api.GET("/frames", func(c *gin.Context) {
		frames, stop := s.scene.Subscribe()
		defer stop()

		c.SSEvent("frame", s.scene.Latest())
		c.Writer.Flush()
		c.Stream(func(w io.Writer) bool {
			select {
			case f := <-frames:
				c.SSEvent("frame", f)
				return true
			case <-c.Request.Context().Done():
				return false
			case <-s.done:
				return false
			}
		})
	})

	return r
}
