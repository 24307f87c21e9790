package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type Enrollment struct {
	ID         int    `json:"id"`
	StudentID  int    `json:"student"`
	Course     Course `json:"course"`
	EnrolledAt string `json:"enrolled_at,omitempty"`
}

// GetStudentEnrollments returns a student's course enrollments.
func (c *Client) GetStudentEnrollments(ctx context.Context, studentID int) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/enrollments/student/%d/enrollments/", studentID), nil, nil, &enrollments)
	return enrollments, err
}

// GetAnalytics passes the upstream analytics payload through untouched;
// the portal does not reinterpret it.
func (c *Client) GetAnalytics(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.Request(ctx, http.MethodGet, "/analytics/", nil, nil, &raw)
	return raw, err
}
