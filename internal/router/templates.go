package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// LoadTemplates assembles every view with the shared layouts. It lives
// here rather than in main so handler tests can build the exact same
// renderer against the same template directory.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("board/list.html", funcMap, assemble(templatesDir+"/views/board/list.html")...)
	r.AddFromFilesFuncs("board/threads.html", funcMap, assemble(templatesDir+"/views/board/threads.html")...)

	r.AddFromFilesFuncs("thread/new.html", funcMap, assemble(templatesDir+"/views/thread/new.html")...)
	r.AddFromFilesFuncs("thread/detail.html", funcMap, assemble(templatesDir+"/views/thread/detail.html")...)
	r.AddFromFilesFuncs("thread/reply.html", funcMap, assemble(templatesDir+"/views/thread/reply.html")...)

	r.AddFromFilesFuncs("rules.html", funcMap, assemble(templatesDir+"/views/rules.html")...)
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
