package article

import (
	"fmt"
	"time"

	"github.com/SergeyParamoshkin/marucat/internal/model"
)

// Fixtures returns sample articles for development databases. Every third
// comment is soft deleted so the filtering shows up right away.
func Fixtures(now time.Time) []*model.Article {
	titles := []struct {
		title string
		tags  []string
	}{
		{"Hi", []string{"OK", "red", "blue"}},
		{"sup", []string{"red"}},
		{"alo", []string{"blue"}},
		{"bonjour", []string{"OK"}},
		{"whats up", nil},
	}

	ms := now.UnixNano() / int64(time.Millisecond)

	articles := make([]*model.Article, 0, len(titles))
	for i, t := range titles {
		ts := ms - int64(i)*int64(time.Hour/time.Millisecond)

		comments := make([]model.Comment, 0, 8)
		for j := 0; j < 8; j++ {
			c := model.Comment{
				From:      "Mary",
				Body:      fmt.Sprintf("Just comment for %d", j),
				Timestamp: ts + int64(j),
			}
			if j%3 == 1 {
				c.Deleted = true
				c.DeletedAt = ts + int64(j)
			}
			comments = append(comments, c)
		}

		articles = append(articles, &model.Article{
			Title:     t.title,
			Author:    "Richard",
			Peek:      "Just a peek at there.",
			Content:   "Nothing here",
			Views:     int64(998 - i),
			Tags:      t.tags,
			Comments:  comments,
			Timestamp: ts,
		})
	}

	return articles
}
