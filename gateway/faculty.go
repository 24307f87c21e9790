package gateway

import (
	"context"
	"fmt"
	"net/http"
)

type Faculty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

func (c *Client) GetFaculty(ctx context.Context, params map[string]string) ([]Faculty, error) {
	var faculty []Faculty
	err := c.Request(ctx, http.MethodGet, "/faculty/", params, nil, &faculty)
	return faculty, err
}

func (c *Client) CreateFaculty(ctx context.Context, data interface{}) error {
	return c.Request(ctx, http.MethodPost, "/faculty/", nil, data, nil)
}

func (c *Client) UpdateFaculty(ctx context.Context, id int, data interface{}) error {
	return c.Request(ctx, http.MethodPut, fmt.Sprintf("/faculty/%d/", id), nil, data, nil)
}

func (c *Client) DeleteFaculty(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/faculty/%d/", id), nil, nil, nil)
}

// GetFacultyCourses returns the courses a faculty member teaches.
func (c *Client) GetFacultyCourses(ctx context.Context, facultyID int) ([]Course, error) {
	var courses []Course
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/faculty/%d/courses/", facultyID), nil, nil, &courses)
	return courses, err
}
