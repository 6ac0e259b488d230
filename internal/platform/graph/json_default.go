//go:build !sonic

package graph

import "github.com/goccy/go-json"

// codec used by imroc/req for request and response bodies
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal
