package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streetsight/streetsight/client"
)

func TestImageResolver(t *testing.T) {
	r := client.NewImageResolver("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080/uploads/a.jpg", r.Resolve("/uploads/a.jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/a.jpg", r.Resolve("uploads/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", r.Resolve("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "http://other.example.com/a.jpg", r.Resolve("http://other.example.com/a.jpg"))
	assert.Equal(t, "", r.Resolve(""))
}
