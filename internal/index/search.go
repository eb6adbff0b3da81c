package index

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/aidanlsb/snip/internal/sqlutil"
)

// DefaultSearchLimit caps results when the caller passes no limit.
const DefaultSearchLimit = 20

// SearchResult is one full-text search hit.
type SearchResult struct {
	ID       int
	Title    string
	Language string
	Tags     string
	Excerpt  string  // matched code with » « around hits
	Rank     float64 // BM25 score, lower is better
}

// Search runs a full-text query over title, language, tags and code.
// The query supports FTS5 syntax:
//   - Simple words: "binary search"
//   - Phrases: '"merge sort"'
//   - Boolean: "sort NOT bubble"
//   - Prefix: "quick*"
//   - Column scope: "tags:algo", "language:python"
//
// Results are ranked by relevance (best matches first); equal ranks keep
// snippet file order.
func (d *Database) Search(query string, limit int) ([]SearchResult, error) {
	match := BuildFTSQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := sqlutil.QueryAll(d.db, scanResult, `
		SELECT
			snippet_id,
			title,
			language,
			tags,
			snippet(snippets_fts, 5, '»', '«', '...', 16) AS excerpt,
			bm25(snippets_fts) AS score
		FROM snippets_fts
		WHERE snippets_fts MATCH ?
		ORDER BY score, position
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return results, nil
}

func scanResult(rows *sql.Rows) (SearchResult, error) {
	var (
		r  SearchResult
		id string
	)
	if err := rows.Scan(&id, &r.Title, &r.Language, &r.Tags, &r.Excerpt, &r.Rank); err != nil {
		return r, err
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return r, fmt.Errorf("corrupt snippet id %q in index: %w", id, err)
	}
	r.ID = n
	return r, nil
}
