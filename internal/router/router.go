package router

import (
	"dreamboard/internal/config"
	"dreamboard/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Handlers
	boardHandler := handlers.NewBoardHandler()
	threadHandler := handlers.NewThreadHandler(cfg)
	postHandler := handlers.NewPostHandler(cfg)

	r.GET("/", boardHandler.Index)  // board list + visitor count
	r.GET("/rules", boardHandler.Rules) // static rules page

	r.GET("/board/:boardId", boardHandler.Threads)               // threads of a board, newest first
	r.GET("/board/:boardId/new_thread", threadHandler.ShowNew)   // new thread form
	r.POST("/board/:boardId/new_thread", threadHandler.Create)   // submit new thread
	r.GET("/board/:boardId/thread/:threadId", threadHandler.Detail) // posts of a thread

	r.GET("/board/:boardId/thread/:threadId/reply", postHandler.ShowReply)    // reply form
	r.POST("/board/:boardId/thread/:threadId/reply", postHandler.CreateReply) // submit reply

	r.POST("/delete_post/:postId", postHandler.Delete) // moderation delete

	// Stored post images, addressed by their sanitized filename
	r.Static("/images", cfg.ImageDir)
}
