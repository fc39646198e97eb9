package notion

import (
	"context"
	"errors"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// AppendRow creates a page in the given database with one property per
// column. The first column becomes the page title; the rest are rich text.
// Columns and values must be the same length.
//
// A rate-limited response is retried once after a short pause; any other
// failure is returned to the caller.
func AppendRow(ctx context.Context, c Client, dbID string, columns, values []string) error {
	if len(columns) != len(values) {
		return eris.Errorf("notion: column/value length mismatch: %d vs %d", len(columns), len(values))
	}

	props := make(notionapi.Properties, len(columns))
	for i, col := range columns {
		if i == 0 {
			props[col] = notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: values[i]}},
				},
			}
			continue
		}
		props[col] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: values[i]}},
			},
		}
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
	}

	_, err := c.CreatePage(ctx, req)
	if err != nil && isRateLimited(err) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
		_, err = c.CreatePage(ctx, req)
	}
	if err != nil {
		return eris.Wrap(err, "notion: append row")
	}
	return nil
}

func isRateLimited(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Code == "rate_limited"
	}
	return false
}
