package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/storyfolio/config"
	"github.com/Zachkp/storyfolio/contact"
	"github.com/Zachkp/storyfolio/content"
	"github.com/Zachkp/storyfolio/imaging"
	"github.com/Zachkp/storyfolio/live"
	"github.com/Zachkp/storyfolio/navspy"
	"github.com/Zachkp/storyfolio/page"
	"github.com/Zachkp/storyfolio/store"
)

// server holds what the routes share.
type server struct {
	cfg   config.Config
	store *store.Store
	relay contact.Relay
	hub   *live.Hub
	admin *adminAuth
}

func main() {
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.CreateSchema(ctx); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	admin, err := newAdminAuth(cfg)
	if err != nil {
		slog.Error("Failed to generate admin token", "error", err)
		os.Exit(1)
	}

	s := &server{
		cfg:   cfg,
		store: st,
		relay: newRelay(cfg),
		hub:   live.NewHub(),
		admin: admin,
	}
	defer s.hub.Close()

	go s.runVisitorCleanup(ctx)
	if cfg.ThumbnailWidth > 0 {
		go s.buildThumbnails(ctx)
	}

	srv := http.Server{
		Handler: s.newRouter(),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	slog.Info("Listening", "port", cfg.Port, "relay", cfg.ContactRelay)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

func newRelay(cfg config.Config) contact.Relay {
	if cfg.ContactRelay == config.RelayWeb3Forms {
		return contact.NewWeb3Forms(contact.Web3FormsOptions{
			URL:     cfg.Web3FormsURL,
			Timeout: cfg.RelayTimeout,
		})
	}
	return contact.NewSMTPRelay(contact.SMTPConfig{
		Host:    cfg.SMTPHost,
		Port:    cfg.SMTPPort,
		User:    cfg.SMTPUser,
		Pass:    cfg.SMTPPass,
		To:      cfg.ContactTo,
		Timeout: cfg.RelayTimeout,
	})
}

func (s *server) buildThumbnails(ctx context.Context) {
	var names []string
	for _, p := range content.Projects() {
		names = append(names, p.Image)
	}
	imaging.Run(ctx, imaging.Config{
		SourceDir: s.cfg.ImageDir,
		OutputDir: s.cfg.ThumbDir,
		Width:     s.cfg.ThumbnailWidth,
	}, names)
}

// newPage builds the live page for one browser session.
func (s *server) newPage(sink page.Sink) *page.Page {
	return page.New(page.Config{
		ResetDelay: s.cfg.ResetDelay,
		AccessKey:  s.cfg.Web3FormsKey,
		OnContact:  s.recordContact,
	}, s.relay, sink)
}

// recordContact logs every relay outcome to the contact table.
func (s *server) recordContact(f contact.Fields, res contact.Result, err error) {
	msg := store.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Message: f.Message,
		Status:  store.ContactSent,
	}
	switch {
	case err != nil:
		msg.Status = store.ContactFailed
		msg.Detail = err.Error()
	case !res.Success:
		msg.Status = store.ContactRejected
		msg.Detail = res.Message
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.RecordContact(ctx, msg); err != nil {
		slog.Error("Error recording contact message", "error", err)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"milestoneID":   page.MilestoneID,
		"skillCardID":   page.SkillCardID,
		"projectCardID": page.ProjectCardID,
		"metricID":      page.MetricID,
		"counterID":     page.CounterID,
		"achievementID": page.AchievementID,
		"thumb":         imaging.ThumbnailName,
		"ago":           humanize.Time,
		"comma":         humanize.Comma,
		"odd":           func(i int) bool { return i%2 == 1 },
	}
}

func (s *server) newRouter() *gin.Engine {
	r := gin.Default()
	r.SetFuncMap(templateFuncs())
	r.LoadHTMLGlob("templates/*")

	r.Use(s.visitorTrackingMiddleware())

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"heroGreeting": HeroGreeting,
			"heroTitle":    HeroTitle,
			"heroTagline":  HeroTagline,
			"aboutMe":      AboutMe,
			"philosophy":   Philosophy,
			"impactQuote":  ImpactQuote,
			"headings":     sectionHeadings,
			"anchors":      navspy.Anchors,
			"milestones":   content.Milestones(),
			"skills":       content.Skills(),
			"projects":     content.Projects(),
			"metrics":      content.Metrics(),
			"achievements": content.Achievements(),
			"socials":      content.Socials(),
			"thumbs":       s.thumbnailsReady(),
			"year":         time.Now().Year(),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": s.hub.Count(),
		})
	})

	// Contact form without a live session: HTMX posts here and swaps in
	// the returned fragment.
	r.POST("/contact", func(c *gin.Context) {
		fields := contact.Fields{
			Name:    c.PostForm("name"),
			Email:   c.PostForm("email"),
			Message: c.PostForm("message"),
		}
		if missing := fields.Missing(); len(missing) > 0 {
			c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
				"error":   "Please fill in every field.",
				"missing": missing,
			})
			return
		}

		res, err := s.relay.Submit(c.Request.Context(), contact.NewPayload(s.cfg.Web3FormsKey, fields))
		s.recordContact(fields, res, err)
		if status, msg := contact.Describe(res, err); status != contact.Success {
			if err != nil {
				slog.Error("contact relay failed", "error", err)
			}
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": msg,
			})
			return
		}

		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": ContactSuccess,
		})
	})

	liveHandler := live.NewHandler(s.hub, live.HandlerConfig{
		FrameRate: s.cfg.FrameRate,
		NewPage:   s.newPage,
	})
	r.GET("/live", gin.WrapF(liveHandler.Handle))

	s.setupAdminRoutes(r)
	return r
}

// thumbnailsReady reports whether every project has a WebP thumbnail.
func (s *server) thumbnailsReady() bool {
	if s.cfg.ThumbDir == "" {
		return false
	}
	for _, p := range content.Projects() {
		if _, err := os.Stat(filepath.Join(s.cfg.ThumbDir, imaging.ThumbnailName(p.Image))); err != nil {
			return false
		}
	}
	return true
}
