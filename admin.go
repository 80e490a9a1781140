// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/storyfolio/config"
	"github.com/Zachkp/storyfolio/store"
)

// AdminStats is the dashboard payload: stored metrics plus live sessions.
type AdminStats struct {
	*store.Stats
	LiveSessions int `json:"live_sessions"`
}

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

// newAdminAuth generates a fresh session token and IP hashing salt. Both
// change on every restart, so hashed IPs are only comparable within one run.
func newAdminAuth(cfg config.Config) (*adminAuth, error) {
	token, err := generateAdminToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateAdminToken()
	if err != nil {
		return nil, err
	}

	slog.Info("Admin access available", "path", "/admin/login")
	if cfg.DefaultAdmin && gin.Mode() == gin.DebugMode {
		slog.Warn("Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
	}
	slog.Info("Privacy: visitor tracking enabled with hashed IP addresses")

	return &adminAuth{
		token:    token,
		salt:     salt,
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}, nil
}

func generateAdminToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Hash IP address for privacy compliance (consistent per IP)
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and the live socket
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/live" || path == "/health" {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.Visit{
			HashedIP:  s.admin.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
		}
		go s.trackVisitor(visit)
		c.Next()
	}
}

func (s *server) trackVisitor(v store.Visit) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.RecordVisit(ctx, v); err != nil {
		slog.Error("Error recording visitor", "error", err)
	}
}

// Cleanup old visitor data for privacy compliance
func (s *server) cleanupOldVisitorData(ctx context.Context) {
	n, err := s.store.CleanupVisitors(ctx)
	if err != nil {
		slog.Error("Error cleaning up old visitor data", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Privacy cleanup: removed visitor records older than 12 months", "rows", n)
	}
}

// runVisitorCleanup prunes expired visitor rows now and once a day after.
func (s *server) runVisitorCleanup(ctx context.Context) {
	s.cleanupOldVisitorData(ctx)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupOldVisitorData(ctx)
		}
	}
}

func (s *server) adminStats(ctx context.Context) (*AdminStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStats{Stats: stats, LiveSessions: s.hub.Count()}, nil
}

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if s.admin.checkCredentials(username, password) {
			// Secure cookie (24 hours)
			c.SetCookie("admin_token", s.admin.token, 3600*24, "/admin", "", false, true)
			slog.Info("Admin login successful", "client", s.admin.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		slog.Warn("Failed admin login attempt", "client", s.admin.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		slog.Info("Admin logout", "client", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			slog.Error("Error loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			slog.Error("Error loading visitors", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/contacts", func(c *gin.Context) {
		contacts, err := s.store.RecentContacts(c.Request.Context(), 200)
		if err != nil {
			slog.Error("Error loading contact messages", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load contact messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-contacts.html", gin.H{
			"contacts": contacts,
		})
	})

	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		go s.cleanupOldVisitorData(context.WithoutCancel(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		slog.Info("Admin stats exported", "client", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
