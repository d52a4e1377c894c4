package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"dreamboard/internal/config"
	"dreamboard/internal/db"
	"dreamboard/internal/models"
	"dreamboard/internal/services"
	"dreamboard/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxTitleLength = 255

type ThreadHandler struct {
	captcha *services.CaptchaVerifier
	siteKey string
}

func NewThreadHandler(cfg *config.Config) *ThreadHandler {
	return &ThreadHandler{
		captcha: services.NewCaptchaVerifier(cfg.RecaptchaSecretKey, cfg.RecaptchaVerifyURL),
		siteKey: cfg.RecaptchaSiteKey,
	}
}

// ShowNew renders the new-thread form (GET /board/:boardId/new_thread)
func (h *ThreadHandler) ShowNew(c *gin.Context) {
	board, ok := findBoard(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "thread/new.html", gin.H{
		"Board":            board,
		"Errors":           map[string]string{},
		"FormTitle":        "",
		"FormMessage":      "",
		"RecaptchaSiteKey": h.siteKey,
		"Title":            "New thread",
	})
}

// Create makes a thread and its founding post in one transaction
// (POST /board/:boardId/new_thread)
func (h *ThreadHandler) Create(c *gin.Context) {
	board, ok := findBoard(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	message := strings.TrimSpace(c.PostForm("message"))

	errors := map[string]string{}
	if title == "" {
		errors["title"] = "Title is required"
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		errors["title"] = fmt.Sprintf("Title must be at most %d characters", maxTitleLength)
	}
	if message == "" {
		errors["message"] = "Message is required"
	}

	if len(errors) > 0 {
		Render(c, http.StatusBadRequest, "thread/new.html", gin.H{
			"Board":            board,
			"Errors":           errors,
			"FormTitle":        c.PostForm("title"),
			"FormMessage":      c.PostForm("message"),
			"RecaptchaSiteKey": h.siteKey,
			"Title":            "New thread",
		})
		return
	}

	if !h.captcha.Verify(c.PostForm("g-recaptcha-response")) {
		c.String(http.StatusBadRequest, "Captcha failed, please try again")
		return
	}

	ip := c.ClientIP()

	// Thread and founding post commit together, a reader must never see
	// a thread with zero posts.
	var thread models.Thread
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		thread = models.Thread{
			BoardID:     board.ID,
			Title:       title,
			CreatedByIP: ip,
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}

		post := models.Post{
			ThreadID:    thread.ID,
			Message:     message,
			CreatedByIP: ip,
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create the thread, please try again later")
		return
	}

	if err := services.RecordVisit(ip); err != nil {
		log.Printf("Failed to record visit for %s: %v", ip, err)
	}

	// The index shows the visitor count, drop its cached copy
	utils.GetCache().Delete("board:index")

	c.Redirect(http.StatusFound, fmt.Sprintf("/board/%d/thread/%d", board.ID, thread.ID))
}

// Detail lists a thread's posts in submission order
// (GET /board/:boardId/thread/:threadId)
func (h *ThreadHandler) Detail(c *gin.Context) {
	thread, ok := findThread(c)
	if !ok {
		return
	}

	var board models.Board
	if err := db.DB.First(&board, thread.BoardID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Board not found")
		return
	}

	var posts []models.Post
	if err := db.DB.Where("thread_id = ?", thread.ID).
		Order("created_at ASC, id ASC").
		Find(&posts).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Posts are unavailable right now")
		return
	}

	type renderedPost struct {
		models.Post
		MessageHTML template.HTML
		Floor       int
	}

	renderedPosts := make([]renderedPost, len(posts))
	for i, p := range posts {
		renderedPosts[i] = renderedPost{
			Post:        p,
			MessageHTML: utils.RenderMessage(p.Message),
			Floor:       i + 1,
		}
	}

	Render(c, http.StatusOK, "thread/detail.html", gin.H{
		"Board":            board,
		"Thread":           thread,
		"Posts":            renderedPosts,
		"RecaptchaSiteKey": h.siteKey,
		"Title":            thread.Title,
	})
}
