package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/unitrack/portal/core/marks"
)

// MarksQuery narrows a GET /marks/ call.
type MarksQuery struct {
	StudentID int
	SubjectID int
}

func (q MarksQuery) params() map[string]string {
	params := make(map[string]string, 2)
	if q.StudentID != 0 {
		params["student"] = strconv.Itoa(q.StudentID)
	}
	if q.SubjectID != 0 {
		params["subject"] = strconv.Itoa(q.SubjectID)
	}
	return params
}

func (c *Client) GetMarks(ctx context.Context, q MarksQuery) ([]marks.Record, error) {
	var recs []marks.Record
	err := c.Request(ctx, http.MethodGet, "/marks/", q.params(), nil, &recs)
	return recs, err
}

func (c *Client) CreateMarks(ctx context.Context, data interface{}) error {
	return c.Request(ctx, http.MethodPost, "/marks/", nil, data, nil)
}
