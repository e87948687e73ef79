package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec used across the service for api payloads,
// queue messages and journal entries.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ContextKey string

const (
	EventIDPrefix           string     = "e"
	RequestIDPrefix         string     = "r"
	RequestIDHeader         string     = "X-Request-ID"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

var errEmptyRequestBody = errors.New("invalid book request body")

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(RequestNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeBookRequestBody is a helper function to read the content of a book creation request.
// Title and author are validated while decoding.
func DecodeBookRequestBody(r *http.Request) (*Book, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, errEmptyRequestBody
	}
	book := &Book{}
	if err := json.NewDecoder(r.Body).Decode(book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, ip := range strings.Split(ips, ",") {
		ip = strings.TrimSpace(ip)
		if netIP = net.ParseIP(ip); netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	if netIP = net.ParseIP(ip); netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
