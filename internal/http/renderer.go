package http

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mimiru/mimiru/internal/actions"
)

// PageRenderer materialises the JSON payload behind a cached path so
// background refresh tasks can replace stale cache entries without
// waiting for the next reader request.
type PageRenderer struct {
	titles   *actions.Titles
	chapters *actions.Chapters
	genres   *actions.Genres
}

func NewPageRenderer(titles *actions.Titles, chapters *actions.Chapters, genres *actions.Genres) *PageRenderer {
	return &PageRenderer{
		titles:   titles,
		chapters: chapters,
		genres:   genres,
	}
}

// RenderPath rebuilds the payload for one of the revalidated paths.
// API paths must produce exactly what the corresponding live handler
// serves for a bare request, otherwise a cache hit and a cache miss
// would disagree.
func (r *PageRenderer) RenderPath(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case path == "/titles":
		return marshalResult(r.titles.GetTitles())
	case path == "/dashboard/titles":
		return marshalResult(r.titles.GetTitlesWithGenres())
	case path == "/genres":
		return marshalResult(r.genres.GetGenres())
	case path == "/dashboard/genres":
		return marshalResult(r.genres.GetGenresWithTitleCount())
	case path == "/latest":
		return marshalResult(r.chapters.GetLatestChapters(10))
	case strings.HasPrefix(path, "/titles/"):
		id, err := strconv.ParseUint(strings.TrimPrefix(path, "/titles/"), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("unrenderable path %q: %w", path, err)
		}
		return marshalResult(r.titles.GetTitleByID(uint(id)))
	}

	return nil, fmt.Errorf("no renderer for path %q", path)
}

// CanRender reports whether RenderPath has a payload for path. The
// refresher uses it to drop revalidated paths that only exist as client
// routes.
func (r *PageRenderer) CanRender(path string) bool {
	switch {
	case path == "/titles", path == "/dashboard/titles",
		path == "/genres", path == "/dashboard/genres",
		path == "/latest":
		return true
	case strings.HasPrefix(path, "/titles/"):
		_, err := strconv.ParseUint(strings.TrimPrefix(path, "/titles/"), 10, 32)
		return err == nil
	}
	return false
}

func marshalResult[T any](result actions.Result[T]) ([]byte, error) {
	if !result.Success() {
		return nil, fmt.Errorf("render failed: %s", result.Err())
	}
	return json.Marshal(result)
}
