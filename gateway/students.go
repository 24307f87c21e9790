package gateway

import (
	"context"
	"fmt"
	"net/http"
)

type Student struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	RollNo     string `json:"roll_no"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Phone      string `json:"phone,omitempty"`
}

func (c *Client) GetStudents(ctx context.Context, params map[string]string) ([]Student, error) {
	var students []Student
	err := c.Request(ctx, http.MethodGet, "/students/", params, nil, &students)
	return students, err
}

func (c *Client) GetStudent(ctx context.Context, id int) (Student, error) {
	var student Student
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/students/%d/", id), nil, nil, &student)
	return student, err
}

func (c *Client) CreateStudent(ctx context.Context, data interface{}) error {
	return c.Request(ctx, http.MethodPost, "/students/", nil, data, nil)
}

func (c *Client) UpdateStudent(ctx context.Context, id int, data interface{}) error {
	return c.Request(ctx, http.MethodPut, fmt.Sprintf("/students/%d/", id), nil, data, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/students/%d/", id), nil, nil, nil)
}
