package handlers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"dreamboard/internal/config"
	"dreamboard/internal/db"
	"dreamboard/internal/models"
	"dreamboard/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	captcha       *services.CaptchaVerifier
	images        *services.ImageStore
	siteKey       string
	adminPassword string
}

func NewPostHandler(cfg *config.Config) *PostHandler {
	return &PostHandler{
		captcha:       services.NewCaptchaVerifier(cfg.RecaptchaSecretKey, cfg.RecaptchaVerifyURL),
		images:        services.NewImageStore(cfg.ImageDir, cfg.MaxUploadBytes),
		siteKey:       cfg.RecaptchaSiteKey,
		adminPassword: cfg.AdminPassword,
	}
}

// ShowReply renders the reply form
// (GET /board/:boardId/thread/:threadId/reply)
func (h *PostHandler) ShowReply(c *gin.Context) {
	thread, ok := findThread(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "thread/reply.html", gin.H{
		"Thread":           thread,
		"Errors":           map[string]string{},
		"RecaptchaSiteKey": h.siteKey,
		"Title":            "Reply",
	})
}

// CreateReply appends a post, with an optional image, to a thread
// (POST /board/:boardId/thread/:threadId/reply)
func (h *PostHandler) CreateReply(c *gin.Context) {
	thread, ok := findThread(c)
	if !ok {
		return
	}

	message := strings.TrimSpace(c.PostForm("message"))
	if message == "" {
		Render(c, http.StatusBadRequest, "thread/reply.html", gin.H{
			"Thread":           thread,
			"Errors":           map[string]string{"message": "Message is required"},
			"RecaptchaSiteKey": h.siteKey,
			"Title":            "Reply",
		})
		return
	}

	if !h.captcha.Verify(c.PostForm("g-recaptcha-response")) {
		c.String(http.StatusBadRequest, "Captcha failed, please try again")
		return
	}

	// An image is optional, and a disallowed extension only drops the
	// image, never the post.
	var image *string
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		filename, err := h.images.Save(file, header)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not store the image, please try again later")
			return
		}
		if filename != "" {
			image = &filename
		}
	}

	ip := c.ClientIP()

	post := models.Post{
		ThreadID:    thread.ID,
		Message:     message,
		Image:       image,
		CreatedByIP: ip,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create the post, please try again later")
		return
	}

	if err := services.RecordVisit(ip); err != nil {
		log.Printf("Failed to record visit for %s: %v", ip, err)
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/board/%d/thread/%d", thread.BoardID, thread.ID))
}

// Delete removes a single post after checking the moderation secret
// (POST /delete_post/:postId)
func (h *PostHandler) Delete(c *gin.Context) {
	password := c.PostForm("admin_password")
	if subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) != 1 {
		RenderError(c, http.StatusForbidden, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(c.Param("postId"))
	if err != nil || id <= 0 {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	// Hard delete. An emptied thread stays in place.
	if err := db.DB.Delete(&post).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the post, please try again later")
		return
	}

	setFlash(c, "Post deleted")

	redirect := c.Request.Referer()
	if redirect == "" {
		redirect = "/"
	}
	c.Redirect(http.StatusFound, redirect)
}
