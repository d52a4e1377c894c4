package handlers

import (
	"net/http"
	"strconv"
	"time"

	"dreamboard/internal/db"
	"dreamboard/internal/models"
	"dreamboard/internal/services"
	"dreamboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct{}

func NewBoardHandler() *BoardHandler {
	return &BoardHandler{}
}

// fillThreadCounts batch-fills the thread count of each board
func fillThreadCounts(boards []models.Board) {
	if len(boards) == 0 {
		return
	}

	boardIDs := make([]uint, len(boards))
	for i, b := range boards {
		boardIDs[i] = b.ID
	}

	type countResult struct {
		BoardID uint
		Count   int
	}
	var results []countResult
	db.DB.Model(&models.Thread{}).
		Select("board_id, COUNT(*) as count").
		Where("board_id IN ?", boardIDs).
		Group("board_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.BoardID] = r.Count
	}

	for i := range boards {
		boards[i].ThreadCount = countMap[boards[i].ID]
	}
}

// fillPostCounts batch-fills the post count of each thread
func fillPostCounts(threads []models.Thread) {
	if len(threads) == 0 {
		return
	}

	threadIDs := make([]uint, len(threads))
	for i, t := range threads {
		threadIDs[i] = t.ID
	}

	type countResult struct {
		ThreadID uint
		Count    int
	}
	var results []countResult
	db.DB.Model(&models.Post{}).
		Select("thread_id, COUNT(*) as count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ThreadID] = r.Count
	}

	for i := range threads {
		threads[i].PostCount = countMap[threads[i].ID]
	}
}

// Index lists every board together with the unique-visitor count (GET /)
func (h *BoardHandler) Index(c *gin.Context) {
	cacheKey := "board:index"
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "board/list.html", hData)
			return
		}
	}

	var boards []models.Board
	if err := db.DB.Order("id ASC").Find(&boards).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "The board list is unavailable right now")
		return
	}

	fillThreadCounts(boards)

	visitorCount, err := services.VisitorCount()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "The board list is unavailable right now")
		return
	}

	renderData := gin.H{
		"Boards":       boards,
		"VisitorCount": visitorCount,
		"Title":        "Boards",
	}

	// Cache for 1 minute, a slightly stale visitor count is fine
	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "board/list.html", renderData)
}

// Threads lists a board's threads, newest first (GET /board/:boardId)
func (h *BoardHandler) Threads(c *gin.Context) {
	board, ok := findBoard(c)
	if !ok {
		return
	}

	var threads []models.Thread
	if err := db.DB.Where("board_id = ?", board.ID).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Threads are unavailable right now")
		return
	}

	fillPostCounts(threads)

	Render(c, http.StatusOK, "board/threads.html", gin.H{
		"Board":   board,
		"Threads": threads,
		"Title":   board.Name,
	})
}

// Rules is the static rules page (GET /rules)
func (h *BoardHandler) Rules(c *gin.Context) {
	Render(c, http.StatusOK, "rules.html", gin.H{"Title": "Rules"})
}

// findBoard resolves the :boardId route param, rendering a 404 page on
// a malformed id or an unknown board.
func findBoard(c *gin.Context) (*models.Board, bool) {
	id, err := strconv.Atoi(c.Param("boardId"))
	if err != nil || id <= 0 {
		RenderError(c, http.StatusNotFound, "Board not found")
		return nil, false
	}

	var board models.Board
	if err := db.DB.First(&board, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Board not found")
		return nil, false
	}
	return &board, true
}

// findThread resolves :boardId/:threadId together, so a thread id under
// the wrong board is a 404 too.
func findThread(c *gin.Context) (*models.Thread, bool) {
	boardID, err := strconv.Atoi(c.Param("boardId"))
	if err != nil || boardID <= 0 {
		RenderError(c, http.StatusNotFound, "Thread not found")
		return nil, false
	}
	threadID, err := strconv.Atoi(c.Param("threadId"))
	if err != nil || threadID <= 0 {
		RenderError(c, http.StatusNotFound, "Thread not found")
		return nil, false
	}

	var thread models.Thread
	if err := db.DB.Where("id = ? AND board_id = ?", threadID, boardID).
		First(&thread).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Thread not found")
		return nil, false
	}
	return &thread, true
}
