package tools

import (
	"context"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/aisa-it/editorlab/internal/editorlab/comparison"
	"github.com/aisa-it/editorlab/internal/editorlab/mcp/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var comparisonTools = []Tool{
	{
		mcp.NewTool(
			"compare_editors",
			mcp.WithDescription("Сравнение редакторов: оценки по аспектам (1 - просто или слабо, 5 - сложно или сильно), рекомендации по выбору"),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("aspect",
				mcp.Description("Название аспекта, например Performance. Без него возвращается вся таблица"),
			),
		),
		compareEditors,
	},
}

func GetComparisonTools(deps *Deps) []server.ServerTool {
	return serverTools(deps, comparisonTools)
}

type aspectRating struct {
	Editor      string `json:"editor"`
	Title       string `json:"title"`
	Rating      int    `json:"rating"`
	Stars       string `json:"stars"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

type aspectResult struct {
	Aspect  string         `json:"aspect"`
	Ratings []aspectRating `json:"ratings"`
}

func compareEditors(_ context.Context, deps *Deps, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if deps.Table == nil {
		return logger.Error(apierrors.ErrNotFound), nil
	}
	name := request.GetString("aspect", "")
	if strings.TrimSpace(name) == "" {
		return mcp.NewToolResultJSON(deps.Table)
	}

	aspect, ok := deps.Table.Aspect(name)
	if !ok {
		names := make([]string, 0, len(deps.Table.Aspects))
		for _, a := range deps.Table.Aspects {
			names = append(names, a.Name)
		}
		return logger.Error(apierrors.ErrNotFound, "Доступные аспекты: "+strings.Join(names, ", ")), nil
	}

	res := aspectResult{Aspect: aspect.Name}
	for _, e := range deps.Table.Editors {
		r := aspect.Ratings[e.Key]
		res.Ratings = append(res.Ratings, aspectRating{
			Editor:      e.Key,
			Title:       e.Title,
			Rating:      r.Rating,
			Stars:       comparison.Stars(r.Rating),
			Text:        r.Text,
			Description: r.Description,
		})
	}
	return mcp.NewToolResultJSON(res)
}
