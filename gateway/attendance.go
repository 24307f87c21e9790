package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/unitrack/portal/core/attendance"
)

// AttendanceQuery narrows a GET /attendance/ call; zero fields are
// omitted from the query string.
type AttendanceQuery struct {
	StudentID int
	Date      string // YYYY-MM-DD
	Month     string // YYYY-MM
}

func (q AttendanceQuery) params() map[string]string {
	params := make(map[string]string, 3)
	if q.StudentID != 0 {
		params["student"] = strconv.Itoa(q.StudentID)
	}
	if q.Date != "" {
		params["date"] = q.Date
	}
	if q.Month != "" {
		params["month"] = q.Month
	}
	return params
}

// MarkAttendance is the payload for marking (or correcting) one
// student's attendance on a date.
type MarkAttendance struct {
	StudentID int    `json:"student" validate:"required"`
	CourseID  int    `json:"course" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=P A L"`
}

func (c *Client) GetAttendance(ctx context.Context, q AttendanceQuery) ([]attendance.Record, error) {
	var recs []attendance.Record
	err := c.Request(ctx, http.MethodGet, "/attendance/", q.params(), nil, &recs)
	return recs, err
}

func (c *Client) MarkAttendance(ctx context.Context, data MarkAttendance) error {
	return c.Request(ctx, http.MethodPost, "/attendance/", nil, data, nil)
}

func (c *Client) UpdateAttendance(ctx context.Context, id int, data MarkAttendance) error {
	return c.Request(ctx, http.MethodPut, fmt.Sprintf("/attendance/%d/", id), nil, data, nil)
}
