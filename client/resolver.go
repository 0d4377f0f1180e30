package client

import "strings"

// ImageResolver turns stored image paths into absolute URLs. Paths that are
// already absolute pass through untouched.
type ImageResolver struct {
	base string
}

// NewImageResolver builds a resolver joining relative paths onto base
func NewImageResolver(base string) *ImageResolver {
	return &ImageResolver{base: strings.TrimRight(base, "/")}
}

// Resolve returns the absolute URL for rawPath
func (r *ImageResolver) Resolve(rawPath string) string {
	if rawPath == "" {
		return ""
	}
	if strings.HasPrefix(rawPath, "http://") || strings.HasPrefix(rawPath, "https://") {
		return rawPath
	}
	return r.base + "/" + strings.TrimLeft(rawPath, "/")
}
