package gateway

import (
	"context"
	"fmt"
	"net/http"
)

type Course struct {
	ID             int    `json:"id"`
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	Credits        int    `json:"credits"`
	Specialization string `json:"specialization,omitempty"`
	Year           int    `json:"year"`
	Semester       int    `json:"semester"`
	Description    string `json:"description,omitempty"`
}

func (c *Client) GetCourses(ctx context.Context, params map[string]string) ([]Course, error) {
	var courses []Course
	err := c.Request(ctx, http.MethodGet, "/courses/", params, nil, &courses)
	return courses, err
}

func (c *Client) GetCourse(ctx context.Context, id int) (Course, error) {
	var course Course
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/courses/%d/", id), nil, nil, &course)
	return course, err
}

func (c *Client) CreateCourse(ctx context.Context, data interface{}) error {
	return c.Request(ctx, http.MethodPost, "/courses/", nil, data, nil)
}

func (c *Client) UpdateCourse(ctx context.Context, id int, data interface{}) error {
	return c.Request(ctx, http.MethodPut, fmt.Sprintf("/courses/%d/", id), nil, data, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d/", id), nil, nil, nil)
}

// GetCourseStudents returns the enrolled roster for a course.
func (c *Client) GetCourseStudents(ctx context.Context, courseID int) ([]Student, error) {
	var students []Student
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/enrollments/courses/%d/students/", courseID), nil, nil, &students)
	return students, err
}
