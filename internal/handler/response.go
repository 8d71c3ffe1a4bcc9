package handler

import (
	"github.com/labstack/echo/v4"

	"alemsite/internal/service"
)

// Envelope is the JSON shape every endpoint answers with.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Token      string              `json:"token,omitempty"`
	Data       interface{}         `json:"data,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, status int, data interface{}, count int) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Count: &count})
}

func respondPage(c echo.Context, status int, data interface{}, count int, pagination *service.Pagination) error {
	return c.JSON(status, Envelope{Success: true, Data: data, Count: &count, Pagination: pagination})
}
